/*
Package keybinds provides customizable keyboard binding management.

Bindings live in contexts: global, normal (the food list), form (add and
edit modals), confirm (delete confirmation) and viewer (scrollable modals).
A key bound in a specific context shadows the global binding.

Users override defaults in keybinds.json. Each section maps an action to a
comma-separated key list and replaces that action's default keys:

	{
	  // vim users
	  "normal": {
	    "new_food": "o",
	    "delete_food": "dd"
	  },
	  "viewer": {
	    "close_modal": "esc,q,h"
	  }
	}

Multi-key sequences such as "gg" are matched with Registry.MatchMultiKey.
*/
package keybinds
