package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gn"
	app "github.com/gnames/taxlookup/pkg"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/ent/meta"
	"github.com/gnames/taxlookup/pkg/ent/rank"
	"github.com/gnames/taxlookup/pkg/errcode"
	"github.com/gnames/taxlookup/pkg/lineage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB knows two accessions, fails on "BAD" and misses everything else.
type fakeDB struct{}

var human = lineage.Lineage{
	{Rank: rank.Species, Name: "Homo sapiens"},
	{Rank: rank.Genus, Name: "Homo"},
}

func (fakeDB) Resolve(acc string) (uint32, error) {
	switch acc {
	case "A1", "A2":
		return 9606, nil
	case "BAD":
		return 0, &gn.Error{Code: errcode.CorruptedError, Err: errors.New("bad")}
	}
	return 0, &gn.Error{Code: errcode.NotFoundError, Err: errors.New("missing")}
}

func (d fakeDB) QueryAccession(acc string) (app.Result, error) {
	res := app.Result{Query: acc}
	id, err := d.Resolve(acc)
	if err != nil {
		return res, err
	}
	res.TaxonID, res.Lineage = id, human
	return res, nil
}

func (fakeDB) QueryTaxon(id uint32) (app.Result, error) {
	if id != 9606 {
		return app.Result{}, &gn.Error{Code: errcode.NotFoundError, Err: errors.New("missing")}
	}
	return app.Result{TaxonID: id, Lineage: human}, nil
}

func (fakeDB) Rank(uint32) (rank.Rank, error) { return rank.Species, nil }
func (fakeDB) Name(uint32) (string, error)    { return "Homo sapiens", nil }
func (fakeDB) Meta() (*meta.Meta, error)      { return nil, nil }
func (fakeDB) Dir() string                    { return "" }
func (fakeDB) Close() error                   { return nil }

func TestQueries(t *testing.T) {
	tests := []struct {
		msg   string
		args  []string
		stdin string
		want  []string
	}{
		{"arguments", []string{"A1", "A2"}, "X1\n", []string{"A1", "A2"}},
		{"stdin", nil, "A1\n\n  A2 \n", []string{"A1", "A2"}},
		{"dash", []string{"-"}, "A2\nA1", []string{"A2", "A1"}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			ch := make(chan string, 10)
			read := queries(tt.args, strings.NewReader(tt.stdin))
			require.NoError(t, read(context.Background(), ch))
			close(ch)

			var got []string
			for v := range ch {
				got = append(got, v)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		msg    string
		lcfg   config.LookupConfig
		args   []string
		out    string
		errOut string
		failed int
	}{
		{
			msg:    "text keeps order",
			lcfg:   config.LookupConfig{Format: "text"},
			args:   []string{"A2", "X9", "A1"},
			out:    "A2\t9606\tspecies:Homo sapiens|genus:Homo\nA1\t9606\tspecies:Homo sapiens|genus:Homo\n",
			errOut: "X9\tnot found\n",
		},
		{
			msg:  "tsv",
			lcfg: config.LookupConfig{Format: "tsv"},
			args: []string{"A1"},
			out:  tsvHeader + "\nA1\t9606\tspecies\tHomo sapiens\tHomo sapiens; Homo\n",
		},
		{
			msg:  "json",
			lcfg: config.LookupConfig{Format: "json"},
			args: []string{"A1"},
			out: `{"query":"A1","taxonId":9606,"lineage":[` +
				`{"rank":"species","name":"Homo sapiens"},` +
				`{"rank":"genus","name":"Homo"}]}` + "\n",
		},
		{
			msg:    "taxon ids",
			lcfg:   config.LookupConfig{Format: "text", ByTaxon: true},
			args:   []string{"9606", "42", "human"},
			out:    "9606\t9606\tspecies:Homo sapiens|genus:Homo\n",
			errOut: "42\tnot found\n",
			failed: 1,
		},
		{
			msg:    "other errors are counted",
			lcfg:   config.LookupConfig{Format: "text"},
			args:   []string{"BAD", "A1"},
			out:    "A1\t9606\tspecies:Homo sapiens|genus:Homo\n",
			failed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			var out, errOut bytes.Buffer
			failed, err := lookup(
				context.Background(), fakeDB{}, tt.lcfg,
				queries(tt.args, nil), &out, &errOut,
			)
			require.NoError(t, err)
			assert.Equal(t, tt.failed, failed)
			assert.Equal(t, tt.out, out.String())
			assert.Equal(t, tt.errOut, errOut.String())
		})
	}
}

func TestLookupCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdin := strings.NewReader(strings.Repeat("A1\n", 1000))
	var out, errOut bytes.Buffer
	_, err := lookup(ctx, fakeDB{}, config.LookupConfig{Format: "text"},
		queries(nil, stdin), &out, &errOut)
	assert.ErrorIs(t, err, context.Canceled)
}
