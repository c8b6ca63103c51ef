// SPDX-License-Identifier: MIT

/*
Package mabipack reads and writes Mabinogi ".pack" asset containers: a
fixed 0x220-byte header, a variable-length index of name-classed records,
and a content region of per-entry zlib-compressed, keystream-obfuscated
payloads. One numeric version key covers the whole container; it is stored
per entry and seeds the obfuscation keystream.

# Reading

Open a container and list or read entries:

	r, err := mabipack.Open("language.pack")
	if err != nil {
	    return err
	}
	defer r.Close()
	for _, e := range r.Entries() {
	    data, _ := r.ReadEntry(e.Name)
	    // use data
	}

For metadata-only scans:

	entries, err := mabipack.ListEntries("language.pack")
	if err != nil {
	    return err
	}
	_ = entries

# Extracting

Extract entries to a directory, optionally narrowed by regular expressions
(multiple patterns combine as OR):

	err := r.Extract(ctx, "out/", mabipack.ExtractOptions{
	    Filters: []string{`\.txt$`},
	})

# Packing

Pack a directory tree with a version key:

	inputs, err := mabipack.InputsFromDir("data/", mabipack.WalkOptions{})
	if err != nil {
	    return err
	}
	res, err := mabipack.PackFile(ctx, "out.pack", inputs, 248, mabipack.PackOptions{})

Entries are written in input order and the index offsets accumulate in that
same order; packing is strictly sequential.
*/
package mabipack
