package framespec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/bvz2000/bvzgo/pkg/fsutil"
)

// ExpandOptions controls ExpandFiles. The zero value gives unpadded frame
// matching, the <UDIM> identifier, and strict UDIM format.
type ExpandOptions struct {
	Padding         int    // PadNone, PadAuto, or an explicit digit count
	UDIMIdentifier  string // defaults to <UDIM>
	LooseUDIM       bool   // allow trailing characters after the UDIM digits
	MatchHashLength bool   // "#" runs must match digit count exactly
}

// ExpandFiles resolves a user pattern that may hold a framespec, sequence
// identifiers, and/or a UDIM identifier against the files actually on
// disk. A pattern like
//
//	/tmp/file_%03d_<UDIM>.1-3.exr
//
// returns every matching file for frames 1-3 across all UDIM tiles, plus
// the list of frames for which no file was found (formatted with the
// resolved padding). A pattern with no framespec comes back as itself.
func ExpandFiles(ctx context.Context, pattern string, opts ExpandOptions) (found, missing []string, err error) {
	abs, err := filepath.Abs(pattern)
	if err != nil {
		return nil, nil, errors.Errorf("resolving %s: %w", pattern, err)
	}
	dir, name := filepath.Split(abs)
	dir = filepath.Clean(dir)

	if !fsutil.IsDir(dir) {
		return nil, nil, errors.Errorf("directory does not exist: %s", dir)
	}

	prefix, spec, suffix := FindFrameSpec(name)

	// A bare framespec with no extension after it is a file name, not a
	// sequence ("1920x1080" style names stay untouched).
	var frames []int
	if spec != "" && suffix != "" {
		if frames, err = ExpandFrameSpec(spec); err != nil {
			return nil, nil, err
		}
	}

	pad := CalcPadding(frames, spec, opts.Padding)

	if len(frames) == 0 {
		return []string{filepath.Join(dir, name)}, nil, nil
	}

	prefixPattern := SeqAndUDIMToRegex(prefix, opts.MatchHashLength, opts.UDIMIdentifier, opts.LooseUDIM)
	suffixPattern := SeqAndUDIMToRegex(suffix, opts.MatchHashLength, opts.UDIMIdentifier, opts.LooseUDIM)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Errorf("listing %s: %w", dir, err)
	}

	var missingFrames []int
	for _, frame := range frames {
		// Without explicit padding any zero padding on disk matches.
		var framePattern string
		if opts.Padding == PadNone || opts.Padding == PadAuto {
			framePattern = "0*" + strconv.Itoa(frame)
		} else {
			framePattern = fmt.Sprintf("%0*d", pad, frame)
		}

		re, err := regexp.Compile("^" + prefixPattern + framePattern + suffixPattern + "$")
		if err != nil {
			return nil, nil, errors.Errorf("compiling pattern for frame %d: %w", frame, err)
		}

		matched := false
		for _, entry := range entries {
			if re.MatchString(entry.Name()) {
				found = append(found, filepath.Join(dir, entry.Name()))
				matched = true
			}
		}
		if !matched {
			missingFrames = append(missingFrames, frame)
		}
	}

	sort.Ints(missingFrames)
	for _, frame := range missingFrames {
		missing = append(missing, fmt.Sprintf("%0*d", pad, frame))
	}
	sort.Strings(found)

	zerolog.Ctx(ctx).Debug().
		Str("pattern", pattern).
		Int("found", len(found)).
		Int("missing", len(missing)).
		Msg("expanded file pattern")

	return found, missing, nil
}
