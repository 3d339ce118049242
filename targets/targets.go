// Package targets converts transcripts into CTC label
// sequences.
//
// A symbol table maps each token (e.g. a phone) to an
// output class, one "symbol id" pair per line.
// Transcripts and target archives are line-based, with an
// utterance key followed by its tokens or ids.
package targets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/unixpickle/essentials"
)

// A SymbolTable maps symbols to output classes.
type SymbolTable map[string]int

// ReadSymbolTable reads a symbol table.
// Blank lines are ignored.
func ReadSymbolTable(r io.Reader) (SymbolTable, error) {
	res := SymbolTable{}
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("read symbol table: line %d: expected 2 fields but got %d",
				lineNum, len(fields))
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, essentials.AddCtx(fmt.Sprintf("read symbol table: line %d", lineNum), err)
		}
		if _, ok := res[fields[0]]; ok {
			return nil, fmt.Errorf("read symbol table: line %d: duplicate symbol %q",
				lineNum, fields[0])
		}
		res[fields[0]] = id
	}
	if err := scanner.Err(); err != nil {
		return nil, essentials.AddCtx("read symbol table", err)
	}
	if len(res) == 0 {
		return nil, errors.New("read symbol table: no symbols")
	}
	return res, nil
}

// Find looks up the class for a symbol.
func (s SymbolTable) Find(symbol string) (int, bool) {
	id, ok := s[symbol]
	return id, ok
}

// Convert reads transcripts from r, maps every token with
// the symbol table, and writes the resulting targets to w.
// It returns the number of utterances written.
//
// Every transcript line must contain a key and at least
// one token.
func Convert(r io.Reader, syms SymbolTable, w io.Writer) (int, error) {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	var lineNum, count int
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return count, fmt.Errorf("convert transcripts: line %d: no tokens for %q",
				lineNum, fields[0])
		}
		label := make([]int, len(fields)-1)
		for i, token := range fields[1:] {
			id, ok := syms.Find(token)
			if !ok {
				return count, fmt.Errorf("convert transcripts: line %d: unknown symbol %q",
					lineNum, token)
			}
			label[i] = id
		}
		if err := WriteEntry(bw, fields[0], label); err != nil {
			return count, essentials.AddCtx("convert transcripts", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, essentials.AddCtx("convert transcripts", err)
	}
	if err := bw.Flush(); err != nil {
		return count, essentials.AddCtx("convert transcripts", err)
	}
	return count, nil
}

// WriteEntry writes a single archive line.
func WriteEntry(w io.Writer, key string, label []int) error {
	parts := make([]string, len(label)+1)
	parts[0] = key
	for i, x := range label {
		parts[i+1] = strconv.Itoa(x)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

// An Archive maps utterance keys to labels.
type Archive map[string][]int

// ReadArchive reads a target archive.
func ReadArchive(r io.Reader) (Archive, error) {
	res := Archive{}
	scanner := bufio.NewScanner(r)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		label := make([]int, len(fields)-1)
		for i, f := range fields[1:] {
			id, err := strconv.Atoi(f)
			if err != nil {
				return nil, essentials.AddCtx(fmt.Sprintf("read archive: line %d", lineNum), err)
			}
			label[i] = id
		}
		res[fields[0]] = label
	}
	if err := scanner.Err(); err != nil {
		return nil, essentials.AddCtx("read archive", err)
	}
	return res, nil
}

// WriteArchive writes an archive with keys in sorted
// order.
func WriteArchive(w io.Writer, a Archive) error {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := WriteEntry(w, k, a[k]); err != nil {
			return essentials.AddCtx("write archive", err)
		}
	}
	return nil
}
