/*
Package options builds command-line argument parsers out of resource
files, so a tool's flags are defined next to its localized help text
instead of in code.

🎯 Purpose:
- Reads argument definitions from [options-<name>] resource sections
- Builds a pflag flag set (or decorates a cobra command) from them
- Parses process arguments and serves typed values by dest name

🔄 Flow:
1. Defs reads and validates the definition sections
2. Parse registers each definition on a flag set and parses argv
3. Lookups go through the dest name the definition declared

📝 Design Philosophy:
The resource file is the single source of truth for a tool's interface.
Changing a flag's help text, default, or even its name is an edit to a
text file, and translated resource files get translated --help for free.
*/
package options
