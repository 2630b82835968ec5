// Package framespec expands frame-range strings ("1-10x2,15"), sequence
// identifiers ("####", "%04d"), and UDIM identifiers ("<UDIM>") into frame
// lists, file names, and regex fragments. These patterns are the common
// currency of render and texture pipelines.
package framespec

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Padding modes for CalcPadding and the expand functions. Any positive
// value is an explicit number of digits.
const (
	// PadNone leaves frame numbers unpadded.
	PadNone = 0

	// PadAuto pads to the width of the largest frame number.
	PadAuto = -1
)

// specToken matches one whole frame-range token: comma-separated chunks of
// "start", "start-end", or "start-endxstep" (":" also works as the step
// separator), with an optional trailing run of # or @ padding markers.
var specToken = regexp.MustCompile(
	`^\d+(?:-\d+(?:[x:]-?\d+)?)?(?:,\d+(?:-\d+(?:[x:]-?\d+)?)?)*(?:@+|#+)?$`)

// chunkPattern matches a single comma-separated chunk of a framespec.
var chunkPattern = regexp.MustCompile(`^(\d+)(?:-(\d+)(?:[x:](-?\d+))?)?$`)

// FindFrameSpec locates the framespec in a file name. The spec must be
// bounded by dots or the ends of the string, and when several qualify only
// the last one counts ("file.2.1-10.tif" splits around "1-10"). Returns
// the text before the spec, the spec itself, and the text after it; when
// no spec is present the whole input comes back as the prefix.
func FindFrameSpec(name string) (prefix, spec, suffix string) {
	segments := strings.Split(name, ".")

	last := -1
	for i, segment := range segments {
		if segment != "" && specToken.MatchString(segment) {
			last = i
		}
	}
	if last < 0 {
		return name, "", ""
	}

	prefix = strings.Join(segments[:last], ".")
	if last > 0 {
		prefix += "."
	}
	suffix = strings.Join(segments[last+1:], ".")
	if last < len(segments)-1 {
		suffix = "." + suffix
	}
	return prefix, segments[last], suffix
}

// ExpandFrameSpec expands a framespec into a sorted, de-duplicated list of
// frame numbers. "1-5x2,8" becomes [1 3 5 8]. A negative step walks
// downward ("10-1x-1"). Trailing padding markers (#, @) are ignored here;
// CalcPadding reads those.
func ExpandFrameSpec(spec string) ([]int, error) {
	spec = strings.TrimRight(spec, "#@")

	seen := make(map[int]struct{})
	for _, chunk := range strings.Split(spec, ",") {
		m := chunkPattern.FindStringSubmatch(chunk)
		if m == nil {
			return nil, errors.Errorf("malformed framespec chunk %q in %q", chunk, spec)
		}

		start, _ := strconv.Atoi(m[1])
		end := start
		if m[2] != "" {
			end, _ = strconv.Atoi(m[2])
		}
		step := 1
		if m[3] != "" {
			step, _ = strconv.Atoi(m[3])
		}
		if step == 0 {
			return nil, errors.Errorf("framespec chunk %q has a zero step", chunk)
		}

		if step > 0 {
			for i := start; i <= end; i += step {
				seen[i] = struct{}{}
			}
		} else {
			for i := start; i >= end; i += step {
				seen[i] = struct{}{}
			}
		}
	}

	frames := make([]int, 0, len(seen))
	for frame := range seen {
		frames = append(frames, frame)
	}
	sort.Ints(frames)
	return frames, nil
}

// CalcPadding resolves the digit padding to use for a frame sequence. An
// explicit positive padding wins. Otherwise a trailing #/@ marker run in
// the spec sets it ("1-10###" pads to 3). Otherwise PadAuto pads to the
// widest frame number, and PadNone means no padding at all.
func CalcPadding(frames []int, spec string, padding int) int {
	if padding > 0 {
		return padding
	}

	if n := specPadding(spec); n > 0 {
		return n
	}

	if padding == PadAuto && len(frames) > 0 {
		widest := frames[0]
		for _, frame := range frames {
			if frame > widest {
				widest = frame
			}
		}
		return len(strconv.Itoa(widest))
	}

	return 1
}

// specPadding counts the trailing run of # or @ markers in a framespec.
func specPadding(spec string) int {
	trimmed := strings.TrimRight(spec, "#@")
	return len(spec) - len(trimmed)
}

// ExpandFrameSequence expands a file name containing a framespec into one
// file name per frame. "filename.1-3.exr" yields filename.1.exr through
// filename.3.exr. The files are not checked against disk; use ExpandFiles
// for that. A name without a framespec comes back as a one-element list.
func ExpandFrameSequence(pattern string, padding int) ([]string, error) {
	dir, name := filepath.Split(pattern)

	prefix, spec, suffix := FindFrameSpec(name)
	if spec == "" {
		return []string{pattern}, nil
	}

	frames, err := ExpandFrameSpec(spec)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return []string{pattern}, nil
	}

	pad := CalcPadding(frames, spec, padding)

	output := make([]string, 0, len(frames))
	for _, frame := range frames {
		output = append(output, filepath.Join(dir,
			fmt.Sprintf("%s%0*d%s", prefix, pad, frame, suffix)))
	}
	return output, nil
}
