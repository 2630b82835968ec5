/*
Package config loads ini-style configuration files for bvz tools.

🎯 Purpose:
- Resolves the config path from an explicit argument or an env var
- Parses sections of key = value pairs
- Provides typed, defaultable key access
- Writes modified configs back to disk

🔄 Flow:
1. Resolve the file path (env var wins when set and valid)
2. Parse the file once at startup
3. Serve lookups for the life of the process

📝 Design Philosophy:
Misconfiguration should never be silent. Every failure mode a lookup can
hit (missing file, malformed file, missing section, missing key) has its
own sentinel error, so callers of many different tools can report exactly
what went wrong. Defaults happen only when a caller explicitly asks for
them via the *Default getters.
*/
package config
