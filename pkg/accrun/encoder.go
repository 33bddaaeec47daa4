package accrun

// Stats summarizes one encoding pass.
type Stats struct {
	// RowsRead is the number of pairs received from the source.
	RowsRead int
	// Duplicates is the number of pairs discarded because their accession
	// repeated the previous one.
	Duplicates int
	// Written is the number of keys inserted into the index.
	Written int
	// Runs is the number of runs found in the stream.
	Runs int
}

// Encoder writes run endpoints of an ascending stream of pairs.
// Pairs are fed with Add, and Close must be called after the last one
// to store the end of the final run.
type Encoder struct {
	w Writer

	seen        Pair
	hasSeen     bool
	inserted    Pair
	hasInserted bool

	stats Stats
}

// NewEncoder creates an Encoder that writes to w.
func NewEncoder(w Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode drains src into w and returns statistics of the pass.
func Encode(src PairSource, w Writer) (Stats, error) {
	enc := NewEncoder(w)
	for src.Next() {
		if err := enc.Add(src.Pair()); err != nil {
			return enc.Stats(), err
		}
	}
	if err := src.Err(); err != nil {
		return enc.Stats(), err
	}
	if err := enc.Close(); err != nil {
		return enc.Stats(), err
	}
	return enc.Stats(), nil
}

// Add processes the next pair of the stream. Pairs must come in
// ascending accession order.
func (e *Encoder) Add(p Pair) error {
	e.stats.RowsRead++

	switch {
	case e.hasSeen && p.Accession == e.seen.Accession:
		// the first taxon seen for an accession wins
		e.stats.Duplicates++
		return nil

	case !e.hasSeen:
		e.seen, e.hasSeen = p, true
		e.stats.Runs++
		return e.insert(p)

	case p.TaxonID == e.inserted.TaxonID:
		e.seen = p
		return nil

	default:
		if err := e.insert(e.seen); err != nil {
			return err
		}
		e.seen = p
		e.stats.Runs++
		return e.insert(p)
	}
}

// Close stores the last accession of the final run.
func (e *Encoder) Close() error {
	if !e.hasSeen {
		return nil
	}
	return e.insert(e.seen)
}

// Stats returns the statistics collected so far.
func (e *Encoder) Stats() Stats {
	return e.stats
}

// insert writes p unless it is the pair inserted last, so a run of one
// accession is stored once.
func (e *Encoder) insert(p Pair) error {
	if e.hasInserted && p == e.inserted {
		return nil
	}
	if err := e.w.Insert([]byte(p.Accession), EncodeID(p.TaxonID)); err != nil {
		return err
	}
	e.inserted, e.hasInserted = p, true
	e.stats.Written++
	return nil
}
