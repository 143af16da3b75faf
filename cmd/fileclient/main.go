package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yourname/rangefs/pkg/rangeclient"
)

// main скачивает файл с файлового сервера в stdout; прогресс рисуется в stderr.
func main() {
	head := flag.Bool("head", false, "print file size instead of downloading")
	spec := flag.String("range", "", "byte range to request, e.g. bytes=0-99")
	quiet := flag.Bool("quiet", false, "do not draw the progress bar")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] URL\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	url := flag.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress io.Writer = os.Stderr
	if *quiet {
		progress = nil
	}
	client := rangeclient.New(progress)

	if *head {
		info, err := client.Info(ctx, url)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("size: %d\naccept-ranges: %t\nrequest-id: %s\n", info.Size, info.AcceptRanges, info.RequestID)
		return
	}

	resp, err := client.Get(ctx, url, *spec)
	if err != nil {
		var se *rangeclient.StatusError
		if errors.As(err, &se) && se.ContentRange != "" {
			log.Fatalf("%v (Content-Range: %s)", err, se.ContentRange)
		}
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(os.Stdout, resp.Body); err != nil {
		log.Fatal(err)
	}
}
