package poker

import (
	"fmt"

	"go.dedis.ch/protobuf"
)

const (
	artifactMagic   = "pokereval-tables"
	artifactVersion = 1
)

// tableArtifact is the serialized form of Tables. The CHD index is not
// stored; it is rebuilt from the keys on load.
type tableArtifact struct {
	Magic        string
	Version      uint32
	High         tableRecord
	DeuceToSeven tableRecord
	AceToFive    tableRecord
}

type tableRecord struct {
	Rules      uint32
	Keys       []uint32
	Ranks      []uint32
	FlushKeys  []uint32
	FlushRanks []uint32
	Categories []uint32 // indexed by rank
}

// MarshalBinary encodes the tables. Output is deterministic: equal tables
// produce identical bytes.
func (t *Tables) MarshalBinary() ([]byte, error) {
	art := tableArtifact{Magic: artifactMagic, Version: artifactVersion}
	for _, pair := range []struct {
		table *Table
		dst   *tableRecord
	}{
		{t.High, &art.High},
		{t.DeuceToSeven, &art.DeuceToSeven},
		{t.AceToFive, &art.AceToFive},
	} {
		if pair.table == nil {
			return nil, fmt.Errorf("%w: incomplete table set", ErrTableUnavailable)
		}
		*pair.dst = pair.table.record()
	}
	data, err := protobuf.Encode(&art)
	if err != nil {
		return nil, fmt.Errorf("encode tables: %w", err)
	}
	return data, nil
}

func (t *Table) record() tableRecord {
	rec := tableRecord{Rules: uint32(t.rules)}
	for _, e := range t.entries() {
		if e.flush {
			rec.FlushKeys = append(rec.FlushKeys, e.key)
			rec.FlushRanks = append(rec.FlushRanks, uint32(e.rank))
		} else {
			rec.Keys = append(rec.Keys, e.key)
			rec.Ranks = append(rec.Ranks, uint32(e.rank))
		}
	}
	rec.Categories = make([]uint32, len(t.categories))
	for i, c := range t.categories {
		rec.Categories[i] = uint32(c)
	}
	return rec
}

// UnmarshalTables decodes an artifact written by MarshalBinary and rebuilds
// the lookup indexes. Any malformed input yields ErrTableUnavailable.
func UnmarshalTables(data []byte) (*Tables, error) {
	var art tableArtifact
	if err := protobuf.Decode(data, &art); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrTableUnavailable, err)
	}
	if art.Magic != artifactMagic {
		return nil, fmt.Errorf("%w: not a table artifact", ErrTableUnavailable)
	}
	if art.Version != artifactVersion {
		return nil, fmt.Errorf("%w: artifact version %d, want %d", ErrTableUnavailable, art.Version, artifactVersion)
	}

	var (
		out Tables
		err error
	)
	if out.High, err = art.High.table(HighRules); err != nil {
		return nil, err
	}
	if out.DeuceToSeven, err = art.DeuceToSeven.table(DeuceToSevenRules); err != nil {
		return nil, err
	}
	if out.AceToFive, err = art.AceToFive.table(AceToFiveRules); err != nil {
		return nil, err
	}
	return &out, nil
}

func (rec tableRecord) table(want Rules) (*Table, error) {
	if Rules(rec.Rules) != want {
		return nil, fmt.Errorf("%w: record holds %s, want %s", ErrTableUnavailable, Rules(rec.Rules), want)
	}
	if len(rec.Keys) != len(rec.Ranks) || len(rec.FlushKeys) != len(rec.FlushRanks) {
		return nil, fmt.Errorf("%w: %s record has mismatched columns", ErrTableUnavailable, want)
	}
	if len(rec.Keys) != rankMultisets || len(rec.FlushKeys) != flushRankSets {
		return nil, fmt.Errorf("%w: %s record has %d+%d entries, want %d+%d",
			ErrTableUnavailable, want, len(rec.Keys), len(rec.FlushKeys), rankMultisets, flushRankSets)
	}

	entries := make([]tableEntry, 0, len(rec.Keys)+len(rec.FlushKeys))
	add := func(key, rank uint32, flush bool) error {
		if int(rank) >= len(rec.Categories) {
			return fmt.Errorf("%w: %s rank %d has no category", ErrTableUnavailable, want, rank)
		}
		entries = append(entries, tableEntry{
			key:      key,
			flush:    flush,
			rank:     HandRank(rank),
			category: Category(rec.Categories[rank]),
		})
		return nil
	}
	for i := range rec.Keys {
		if err := add(rec.Keys[i], rec.Ranks[i], false); err != nil {
			return nil, err
		}
	}
	for i := range rec.FlushKeys {
		if err := add(rec.FlushKeys[i], rec.FlushRanks[i], true); err != nil {
			return nil, err
		}
	}
	if err := checkCategoryCounts(want, entries); err != nil {
		return nil, err
	}
	return newTableFromEntries(want, entries)
}
