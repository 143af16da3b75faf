package httprange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Resolve разбирает значение вида "bytes=0-499,-500[/total]" относительно длины ресурса length.
//
// Поддерживаются явные диапазоны "a-b", суффиксные "-n" (последние n байт) и открытые "a-"
// (до конца ресурса). Любая синтаксическая ошибка в любом из токенов отклоняет весь заголовок
// с ErrMalformedRange. Результат отсортирован по Start, пересекающиеся и смежные интервалы
// слиты в один.
func Resolve(value string, length int64) (RangeSet, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RangeSet{}, fmt.Errorf("%w: empty value", ErrMalformedRange)
	}

	parts := splitTrim(value, "=")
	if parts[0] != Unit {
		return RangeSet{}, fmt.Errorf("%w: unsupported unit %q", ErrMalformedRange, parts[0])
	}
	if len(parts) != 2 {
		return RangeSet{}, fmt.Errorf("%w: %q", ErrMalformedRange, value)
	}

	params := splitTrim(parts[1], "/")
	if len(params) > 2 {
		return RangeSet{}, fmt.Errorf("%w: %q", ErrMalformedRange, value)
	}

	var set RangeSet
	if len(params) == 2 {
		complete, err := parseCompleteLength(params[1])
		if err != nil {
			return RangeSet{}, err
		}
		set.Complete = complete
	}

	specs := strings.Split(params[0], ",")
	ranges := make([]ByteRange, 0, len(specs))
	for _, spec := range specs {
		r, err := resolveSpec(spec, length)
		if err != nil {
			return RangeSet{}, err
		}
		ranges = append(ranges, r)
	}

	set.Ranges = merge(ranges)
	return set, nil
}

// resolveSpec переводит один токен "start-end" в абсолютный интервал.
func resolveSpec(spec string, length int64) (ByteRange, error) {
	values := splitTrim(spec, "-")
	if len(values) != 2 {
		return ByteRange{}, fmt.Errorf("%w: range spec %q", ErrMalformedRange, spec)
	}
	first, last := values[0], values[1]

	var r ByteRange
	switch {
	case first != "" && last != "":
		start, err := parsePos(first)
		if err != nil {
			return ByteRange{}, err
		}
		end, err := parsePos(last)
		if err != nil {
			return ByteRange{}, err
		}
		r = ByteRange{Start: start, End: end}

	case first == "" && last != "":
		// Суффикс длиннее ресурса покрывает ресурс целиком.
		count, err := parsePos(last)
		if err != nil {
			return ByteRange{}, err
		}
		r = ByteRange{Start: max(length-count, 0), End: length - 1}

	case first != "" && last == "":
		start, err := parsePos(first)
		if err != nil {
			return ByteRange{}, err
		}
		r = ByteRange{Start: start, End: length - 1}

	default:
		return ByteRange{}, fmt.Errorf("%w: range spec %q has no bounds", ErrMalformedRange, spec)
	}

	if r.Start > r.End {
		return ByteRange{}, fmt.Errorf("%w: start %d is past end %d", ErrMalformedRange, r.Start, r.End)
	}

	return r, nil
}

// merge сортирует интервалы и за один проход сливает пересекающиеся и смежные.
func merge(ranges []ByteRange) []ByteRange {
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	out := ranges[:0]
	for _, r := range ranges {
		if n := len(out); n > 0 && r.Start-1 <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}

	return out
}

func parseCompleteLength(s string) (CompleteLength, error) {
	switch s {
	case "":
		return CompleteLength{}, nil
	case "*":
		return CompleteLength{Kind: LengthUnknown}, nil
	}

	n, err := parsePos(s)
	if err != nil {
		return CompleteLength{}, err
	}
	return CompleteLength{Kind: LengthKnown, Value: n}, nil
}

// parsePos разбирает неотрицательное десятичное число без знака.
func parsePos(s string) (int64, error) {
	n, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("%w: bad position %q", ErrMalformedRange, s)
	}
	return int64(n), nil
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
