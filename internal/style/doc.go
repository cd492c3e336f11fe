// Package style holds style settings tables: flat, read-only mappings from
// dotted setting names such as "axes.facecolor" to the raw values a
// rendering engine consumes.
//
// Tables are parsed from the line-oriented "key : value  # comment" format
// and never change after construction, so a *Table can be shared between
// goroutines without locking. Values are kept as text; the typed accessors
// on Value interpret them on demand. Checking that a value has the type a
// key expects is left to the consumer (see package schema).
package style
