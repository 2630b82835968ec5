package options

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/bvz2000/bvzgo/pkg/resources"
)

// SectionPrefix is prepended to an argument name to find its definition
// section in a resources file, e.g. "options-verbose" for "verbose".
const SectionPrefix = "options-"

// Supported values for the "type" setting of an argument definition.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool"
	TypeCount  = "count"
	TypeList   = "list"
)

// Placeholder text used when an argument definition omits its metavar or
// description. Deliberately loud so missing translations get noticed.
const (
	noMetavar     = "{{COLOR_RED}}No Meta Var{{COLOR_NONE}}"
	noDescription = "{{COLOR_RED}}No Desc. Available{{COLOR_NONE}}"
)

// 🔧 Def is one command-line argument definition read from a resources
// file. Flags are stored without their dashes.
type Def struct {
	Name        string // definition name (section minus the prefix)
	ShortFlag   string // single letter, may be empty
	LongFlag    string // flag name, required
	Dest        string // lookup name for the parsed value, defaults to LongFlag
	Type        string // one of the Type* constants
	Default     string // unparsed default value
	Metavar     string // value placeholder for usage text
	Description string // help text, may contain {{COLOR_*}} tags
	Required    bool
}

// Defs reads and validates the argument definitions for the given names
// from a resources file. A missing definition section, or a definition
// without long_flag or type, is an error naming the file, section, and
// setting. Missing metavar and description degrade to placeholder text.
func Defs(resc *resources.Resources, names []string) ([]Def, error) {
	defs := make([]Def, 0, len(names))

	for _, name := range names {
		section := SectionPrefix + name

		if !resc.HasSection(section) {
			return nil, errors.Errorf("argument %q: section [%s] not found in %s",
				name, section, resc.Path())
		}

		long, err := resc.GetString(section, "long_flag")
		if err != nil || long == "" {
			return nil, errors.Errorf("argument %q: setting \"long_flag\" missing in [%s] in %s",
				name, section, resc.Path())
		}

		typ, err := resc.GetString(section, "type")
		if err != nil || typ == "" {
			return nil, errors.Errorf("argument %q: setting \"type\" missing in [%s] in %s",
				name, section, resc.Path())
		}
		typ = strings.ToLower(typ)
		switch typ {
		case TypeString, TypeInt, TypeFloat, TypeBool, TypeCount, TypeList:
		default:
			return nil, errors.Errorf("argument %q: unknown type %q in [%s] in %s",
				name, typ, section, resc.Path())
		}

		long = strings.TrimLeft(long, "-")
		short := strings.TrimLeft(resc.GetStringDefault(section, "short_flag", ""), "-")
		if len(short) > 1 {
			return nil, errors.Errorf("argument %q: short_flag %q must be a single letter",
				name, short)
		}

		required, err := resc.GetBoolDefault(section, "required", false)
		if err != nil {
			return nil, errors.Errorf("argument %q: %w", name, err)
		}

		dest := resc.GetStringDefault(section, "dest", long)

		defs = append(defs, Def{
			Name:        name,
			ShortFlag:   short,
			LongFlag:    long,
			Dest:        dest,
			Type:        typ,
			Default:     resc.GetStringDefault(section, "default", ""),
			Metavar:     resc.GetStringDefault(section, "metavar", noMetavar),
			Description: resc.GetStringDefault(section, "description", noDescription),
			Required:    required,
		})
	}

	return defs, nil
}

// 🎯 Options holds parsed command-line values, looked up by dest name.
type Options struct {
	fs     *pflag.FlagSet
	defs   []Def
	byDest map[string]string
}

// Parse reads the argument definitions named in names from the resources
// file, builds a flag set from them, and parses argv (without the program
// name). Unknown flags and missing required flags are errors.
func Parse(ctx context.Context, resc *resources.Resources, names []string, argv []string) (*Options, error) {
	defs, err := Defs(resc, names)
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet(resc.Prefix(), pflag.ContinueOnError)
	fs.Usage = func() {
		if desc := resc.Description(); desc != "" {
			fmt.Fprintln(os.Stderr, desc)
		}
		if usage := resc.Usage(); usage != "" {
			fmt.Fprintln(os.Stderr, usage)
		}
		fmt.Fprintln(os.Stderr, fs.FlagUsages())
	}

	byDest := make(map[string]string, len(defs))
	for _, def := range defs {
		if err := register(fs, def); err != nil {
			return nil, err
		}
		byDest[def.Dest] = def.LongFlag
	}

	zerolog.Ctx(ctx).Debug().
		Strs("args", argv).
		Int("defs", len(defs)).
		Msg("parsing command line")

	if err := fs.Parse(argv); err != nil {
		return nil, errors.Errorf("parsing arguments: %w", err)
	}

	for _, def := range defs {
		if def.Required && !fs.Changed(def.LongFlag) {
			return nil, errors.Errorf("required flag --%s not set", def.LongFlag)
		}
	}

	return &Options{fs: fs, defs: defs, byDest: byDest}, nil
}

// AddToCommand registers the definitions as flags on a cobra command, for
// tools that hang their CLI off cobra instead of a bare flag set.
func AddToCommand(cmd *cobra.Command, defs []Def) error {
	for _, def := range defs {
		if err := register(cmd.Flags(), def); err != nil {
			return err
		}
		if def.Required {
			if err := cmd.MarkFlagRequired(def.LongFlag); err != nil {
				return errors.Errorf("marking --%s required: %w", def.LongFlag, err)
			}
		}
	}
	return nil
}

// register adds a single definition to a flag set, parsing the default
// value according to the definition type.
func register(fs *pflag.FlagSet, def Def) error {
	help := resources.FormatString(
		"{{COLOR_BRIGHT_YELLOW}}" + def.Description + "{{COLOR_NONE}}")

	// pflag reads the value placeholder out of backticks in the usage text.
	if def.Metavar != "" && def.Type != TypeBool && def.Type != TypeCount {
		help = "`" + resources.FormatString(def.Metavar) + "` " + help
	}

	switch def.Type {
	case TypeString:
		fs.StringP(def.LongFlag, def.ShortFlag, def.Default, help)

	case TypeInt:
		d := 0
		if def.Default != "" {
			var err error
			if d, err = strconv.Atoi(def.Default); err != nil {
				return errors.Errorf("argument %q: parsing default %q as int: %w",
					def.Name, def.Default, err)
			}
		}
		fs.IntP(def.LongFlag, def.ShortFlag, d, help)

	case TypeFloat:
		d := 0.0
		if def.Default != "" {
			var err error
			if d, err = strconv.ParseFloat(def.Default, 64); err != nil {
				return errors.Errorf("argument %q: parsing default %q as float: %w",
					def.Name, def.Default, err)
			}
		}
		fs.Float64P(def.LongFlag, def.ShortFlag, d, help)

	case TypeBool:
		d := false
		if def.Default != "" {
			var err error
			if d, err = strconv.ParseBool(def.Default); err != nil {
				return errors.Errorf("argument %q: parsing default %q as bool: %w",
					def.Name, def.Default, err)
			}
		}
		fs.BoolP(def.LongFlag, def.ShortFlag, d, help)

	case TypeCount:
		// Counts always start at zero, the default setting is ignored.
		fs.CountP(def.LongFlag, def.ShortFlag, help)

	case TypeList:
		var d []string
		if def.Default != "" {
			for _, v := range strings.Split(def.Default, ",") {
				d = append(d, strings.TrimSpace(v))
			}
		}
		fs.StringSliceP(def.LongFlag, def.ShortFlag, d, help)

	default:
		return errors.Errorf("argument %q: unknown type %q", def.Name, def.Type)
	}

	return nil
}

// lookup maps a dest name back to the flag it was registered under.
func (o *Options) lookup(dest string) string {
	if flag, ok := o.byDest[dest]; ok {
		return flag
	}
	return dest
}

// String returns the string value stored under dest.
func (o *Options) String(dest string) (string, error) {
	return o.fs.GetString(o.lookup(dest))
}

// Int returns the integer value stored under dest.
func (o *Options) Int(dest string) (int, error) {
	return o.fs.GetInt(o.lookup(dest))
}

// Float returns the float value stored under dest.
func (o *Options) Float(dest string) (float64, error) {
	return o.fs.GetFloat64(o.lookup(dest))
}

// Bool returns the boolean value stored under dest.
func (o *Options) Bool(dest string) (bool, error) {
	return o.fs.GetBool(o.lookup(dest))
}

// Count returns the count value stored under dest.
func (o *Options) Count(dest string) (int, error) {
	return o.fs.GetCount(o.lookup(dest))
}

// List returns the string-slice value stored under dest.
func (o *Options) List(dest string) ([]string, error) {
	return o.fs.GetStringSlice(o.lookup(dest))
}

// Changed reports whether the flag for dest was set on the command line.
func (o *Options) Changed(dest string) bool {
	return o.fs.Changed(o.lookup(dest))
}

// Args returns the positional arguments left over after flag parsing.
func (o *Options) Args() []string {
	return o.fs.Args()
}
