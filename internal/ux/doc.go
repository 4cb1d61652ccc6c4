// Package ux persists the user-facing preferences of the grimoire terminal:
// the CRT phosphor theme, the sound toggle and whether the intro has been
// watched before.
//
// Preferences live in .grimoire/preferences.json. A legacy browser export
// (the persisted "grimoire-ui" store, {"state": {...}, "version": n}) found
// next to it is migrated on first load.
package ux
