// Package httprange разбирает спецификатор диапазонов байт (RFC 7233, byte-ranges-specifier)
// и приводит его к отсортированному набору непересекающихся интервалов.
package httprange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit задаёт единственную поддерживаемую единицу диапазона.
const Unit = "bytes"

var (
	// ErrMalformedRange отклоняет заголовок целиком, частичные диапазоны не восстанавливаются.
	ErrMalformedRange = errors.New("malformed range")
	// ErrUnsatisfiable: диапазон начинается за пределами ресурса.
	ErrUnsatisfiable = errors.New("range not satisfiable")
)

// ByteRange описывает интервал байт, обе границы включительно.
type ByteRange struct {
	Start int64
	End   int64
}

// Len возвращает количество байт в интервале.
func (r ByteRange) Len() int64 {
	return r.End - r.Start + 1
}

// ContentRange формирует значение заголовка Content-Range для частичного ответа.
func (r ByteRange) ContentRange(total int64) string {
	return Unit + " " + strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10) + "/" + strconv.FormatInt(total, 10)
}

// UnsatisfiedContentRange формирует Content-Range для ответа 416.
func UnsatisfiedContentRange(total int64) string {
	return Unit + " */" + strconv.FormatInt(total, 10)
}

// LengthKind различает варианты суффикса "/<total>".
type LengthKind int

const (
	LengthAbsent LengthKind = iota
	LengthUnknown
	LengthKnown
)

// CompleteLength хранит необязательную подсказку о полной длине представления.
type CompleteLength struct {
	Kind  LengthKind
	Value int64
}

func (c CompleteLength) String() string {
	switch c.Kind {
	case LengthUnknown:
		return "*"
	case LengthKnown:
		return strconv.FormatInt(c.Value, 10)
	default:
		return ""
	}
}

// RangeSet хранит результат разбора: интервалы отсортированы по Start, не пересекаются и не соприкасаются.
type RangeSet struct {
	Ranges   []ByteRange
	Complete CompleteLength
}

// First возвращает первый (самый ранний) интервал набора.
func (s RangeSet) First() (ByteRange, bool) {
	if len(s.Ranges) == 0 {
		return ByteRange{}, false
	}
	return s.Ranges[0], true
}

// Satisfy выбирает первый интервал набора и подрезает его конец до length-1.
// Интервал, начинающийся не раньше length, даёт ErrUnsatisfiable.
func (s RangeSet) Satisfy(length int64) (ByteRange, error) {
	r, ok := s.First()
	if !ok {
		return ByteRange{}, fmt.Errorf("%w: empty range set", ErrUnsatisfiable)
	}
	if r.Start >= length {
		return ByteRange{}, fmt.Errorf("%w: start %d, length %d", ErrUnsatisfiable, r.Start, length)
	}
	r.End = min(r.End, length-1)
	return r, nil
}

// String возвращает каноническую запись набора, пригодную для повторного разбора.
func (s RangeSet) String() string {
	var b strings.Builder
	b.WriteString(Unit)
	b.WriteByte('=')
	for i, r := range s.Ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(r.Start, 10))
		b.WriteByte('-')
		b.WriteString(strconv.FormatInt(r.End, 10))
	}
	if s.Complete.Kind != LengthAbsent {
		b.WriteByte('/')
		b.WriteString(s.Complete.String())
	}
	return b.String()
}
