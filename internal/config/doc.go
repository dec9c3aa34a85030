// Package config provides zedit's user settings.
//
// Settings are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. The TOML file, $XDG_CONFIG_HOME/zedit/config.toml unless -config names another
//  3. ZEDIT_* environment variables, e.g. ZEDIT_EDITOR_TAB_WIDTH=8 or ZEDIT_THEME=monokai
//  4. Command line flags, applied by the caller
//
// An example file:
//
//	[editor]
//	tab_width = 4
//	line_numbers = true
//	highlight_budget = 200
//
//	[theme]
//	name = "monokai"
//
//	[theme.colors]
//	comment = "#7f8c8d"
//	selection = ":#44475a"
//
//	[grammars]
//	dirs = ["~/.config/zedit/grammars"]
//
//	[grammars.aliases]
//	jsx = "javascript"
//
//	[log]
//	level = "debug"
//	file = "/tmp/zedit.log"
//
// # Sub-packages
//
//   - loader: TOML files and environment variables
//   - watcher: change notification for live reload
package config
