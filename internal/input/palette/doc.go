// Package palette is the action launcher: a searchable list of every bound
// action, labelled with its chord the way the menu shows it.
//
//	p := palette.New(keymap.Menu(registry), 50)
//	for _, m := range p.Search("mask ao", 5) {
//	    fmt.Println(m.Entry.Label) // "Add AO Generator Mask (Ctrl+Shift+M)"
//	}
//	p.Record("mask.addAOGenerator")
//
// Search is fuzzy: the query is split into terms, and the runes of every
// term must appear in order in the label, the action id or the category. Recently recorded actions rank higher, and an
// empty query lists them first.
//
// All operations are safe for concurrent use.
package palette
