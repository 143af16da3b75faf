package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yourname/rangefs/internal/acceptor"
	"github.com/yourname/rangefs/internal/app/rangehttp"
	"github.com/yourname/rangefs/internal/diag"
	"github.com/yourname/rangefs/internal/usecase/filesvc"
	"github.com/yourname/rangefs/pkg/rangeclient"
	"golang.org/x/sync/errgroup"
)

// startServer поднимает настоящий acceptor на свободном порту и возвращает базовый URL.
func startServer(t *testing.T, root string) string {
	t.Helper()

	h := rangehttp.New(filesvc.New(filesvc.Deps{Root: root}), diag.Discard())
	acc := acceptor.New(h, diag.Discard())
	acc.PollInterval = 10 * time.Millisecond
	sig := acceptor.NewSignals()

	var g errgroup.Group
	g.Go(func() error { return acc.Serve("127.0.0.1:0", sig) })
	t.Cleanup(func() {
		sig.Shutdown.Store(true)
		if err := g.Wait(); err != nil {
			t.Errorf("serve: %v", err)
		}
	})

	deadline := time.Now().Add(5 * time.Second)
	for !sig.Ready.Load() {
		if time.Now().After(deadline) {
			t.Fatal("server is not ready")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return "http://" + acc.Addr().String()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func sum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func Test_HeadGetRange_Integrity(t *testing.T) {
	root := t.TempDir()
	payload := bytes.Repeat([]byte{0xA1, 0xB2, 0xC3, 0xD4}, 250) // 1000 байт
	writeFile(t, root, "file.bin", payload)

	base := startServer(t, root)
	client := rangeclient.New(nil)
	ctx := context.Background()

	info, err := client.Info(ctx, base+"/file.bin")
	if err != nil {
		t.Fatal(err)
	}
	if info.Size != 1000 || !info.AcceptRanges || info.RequestID == "" {
		t.Fatalf("info = %+v", info)
	}

	resp, err := client.Get(ctx, base+"/file.bin", "")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || sum(got) != sum(payload) {
		t.Fatalf("full GET: status %d, sha mismatch", resp.StatusCode)
	}

	resp, err = client.GetRange(ctx, base+"/file.bin", 500, 999)
	if err != nil {
		t.Fatal(err)
	}
	got, _ = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusPartialContent || resp.ContentRange != "bytes 500-999/1000" {
		t.Fatalf("range GET: status %d, Content-Range %q", resp.StatusCode, resp.ContentRange)
	}
	if !bytes.Equal(got, payload[500:]) {
		t.Fatal("range GET: body mismatch")
	}
}

func Test_ReassembleFromRanges(t *testing.T) {
	root := t.TempDir()
	payload := make([]byte, 64<<10)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	writeFile(t, root, "big.bin", payload)

	base := startServer(t, root)
	client := rangeclient.New(nil)
	ctx := context.Background()

	const chunk = 10000
	parts := make([][]byte, (len(payload)+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	for i := range parts {
		i := i
		g.Go(func() error {
			start := int64(i * chunk)
			resp, err := client.GetRange(gctx, base+"/big.bin", start, start+chunk-1)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			parts[i], err = io.ReadAll(resp.Body)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := bytes.Join(parts, nil); sum(got) != sum(payload) {
		t.Fatalf("reassembled %d bytes, sha mismatch", len(got))
	}
}

func Test_ErrorStatuses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.bin", make([]byte, 1000))

	base := startServer(t, root)
	client := rangeclient.New(nil)
	ctx := context.Background()

	_, err := client.Get(ctx, base+"/nope.bin", "")
	var se *rangeclient.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("missing: err = %v", err)
	}

	_, err = client.GetRange(ctx, base+"/file.bin", 2000, 2010)
	if !errors.As(err, &se) || se.Code != http.StatusRequestedRangeNotSatisfiable {
		t.Fatalf("past end: err = %v", err)
	}
	if se.ContentRange != "bytes */1000" {
		t.Fatalf("past end: Content-Range = %q", se.ContentRange)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/file.bin", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("POST status = %d", resp.StatusCode)
	}
}
