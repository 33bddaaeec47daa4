// Package ioaccession merges accession-to-taxon mapping tables. Every
// table must already be sorted by bare accession, and the merger never
// keeps more than one row per table in memory.
package ioaccession

import (
	"bufio"
	"container/heap"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/taxlookup/pkg/accrun"
)

const (
	taxIDColumn = "taxid"

	// maxLine is the longest row the scanner accepts.
	maxLine = 1 << 20
)

// Input is one sorted mapping table.
type Input struct {
	// Name identifies the input in errors, usually a file name.
	Name string
	R    io.Reader
}

type stream struct {
	idx    int
	name   string
	sc     *bufio.Scanner
	accIdx int
	taxIdx int
	line   int
	head   accrun.Pair
}

// Merger produces pairs of all inputs in ascending accession order.
// It implements accrun.PairSource.
type Merger struct {
	h       streamHeap
	cur     accrun.Pair
	last    *stream
	skipped int
	err     error
}

// NewMerger reads the header of every input and the first row of each.
// accColumns lists accepted names of the accession column, the first
// one found in a header is used.
func NewMerger(inputs []Input, accColumns []string) (*Merger, error) {
	m := &Merger{h: make(streamHeap, 0, len(inputs))}

	for i, v := range inputs {
		s, err := newStream(i, v, accColumns)
		if err != nil {
			return nil, err
		}
		ok, err := s.read(&m.skipped)
		if err != nil {
			return nil, err
		}
		if ok {
			m.h = append(m.h, s)
		}
	}
	heap.Init(&m.h)

	return m, nil
}

// Next advances to the next pair. It returns false when all inputs are
// exhausted or an error happened.
func (m *Merger) Next() bool {
	if m.err != nil {
		return false
	}

	if m.last != nil {
		ok, err := m.last.read(&m.skipped)
		if err != nil {
			m.err = err
			return false
		}
		if ok {
			heap.Push(&m.h, m.last)
		}
		m.last = nil
	}

	if m.h.Len() == 0 {
		return false
	}
	s := heap.Pop(&m.h).(*stream)
	m.cur = s.head
	m.last = s
	return true
}

// Pair returns the current pair.
func (m *Merger) Pair() accrun.Pair {
	return m.cur
}

// Err returns the error that stopped the merge.
func (m *Merger) Err() error {
	return m.err
}

// Skipped returns the number of malformed rows that were ignored.
func (m *Merger) Skipped() int {
	return m.skipped
}

func newStream(idx int, in Input, accColumns []string) (*stream, error) {
	sc := bufio.NewScanner(in.R)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, ReadError(in.Name, err)
		}
		return nil, EmptyInputError(in.Name)
	}

	header := strings.Split(sc.Text(), "\t")
	s := &stream{
		idx:    idx,
		name:   in.Name,
		sc:     sc,
		line:   1,
		accIdx: -1,
		taxIdx: slices.Index(header, taxIDColumn),
	}
	for _, col := range accColumns {
		if i := slices.Index(header, col); i >= 0 {
			s.accIdx = i
			break
		}
	}

	if s.accIdx < 0 {
		return nil, HeaderError(in.Name, strings.Join(accColumns, "' or '"))
	}
	if s.taxIdx < 0 {
		return nil, HeaderError(in.Name, taxIDColumn)
	}
	return s, nil
}

// read loads the next valid row into head. Malformed rows are counted
// in skipped and ignored.
func (s *stream) read(skipped *int) (bool, error) {
	minFields := max(s.accIdx, s.taxIdx) + 1

	for s.sc.Scan() {
		s.line++
		fs := strings.Split(s.sc.Text(), "\t")
		if len(fs) < minFields {
			*skipped++
			continue
		}

		acc := accrun.StripVersion(fs[s.accIdx])
		id, err := strconv.ParseUint(fs[s.taxIdx], 10, 32)
		if acc == "" || err != nil {
			*skipped++
			continue
		}

		s.head = accrun.Pair{Accession: acc, TaxonID: uint32(id)}
		return true, nil
	}

	if err := s.sc.Err(); err != nil {
		return false, ReadError(s.name, err)
	}
	return false, nil
}

// streamHeap orders streams by their head accession. Equal accessions
// keep the order of inputs.
type streamHeap []*stream

func (h streamHeap) Len() int { return len(h) }

func (h streamHeap) Less(i, j int) bool {
	a, b := h[i].head.Accession, h[j].head.Accession
	if a != b {
		return a < b
	}
	return h[i].idx < h[j].idx
}

func (h streamHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *streamHeap) Push(x any) { *h = append(*h, x.(*stream)) }

func (h *streamHeap) Pop() any {
	old := *h
	n := len(old)
	s := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return s
}
