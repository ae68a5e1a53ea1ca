package vault

import (
	"context"
	"encoding/hex"
	"io"
	"strings"

	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/gocarina/gocsv"
)

// CSVRecord is one row of a state import file. Binary columns are hex encoded.
type CSVRecord struct {
	TxID         string `csv:"tx_id"`
	OutputIndex  uint32 `csv:"output_index"`
	Quantity     int64  `csv:"quantity"`
	Denomination string `csv:"denomination"`
	IssuerKey    string `csv:"issuer_key"`
	IssuerRef    string `csv:"issuer_ref"`
	Notary       string `csv:"notary"`
	Contract     string `csv:"contract"`
}

func (c *CSVRecord) toStateRecord(line int) (*StateRecord, error) {
	r := &StateRecord{
		Ref: OutputRef{
			TxID:  strings.TrimSpace(c.TxID),
			Index: c.OutputIndex,
		},
		Quantity:     c.Quantity,
		Denomination: strings.TrimSpace(c.Denomination),
		IssuerKey:    strings.TrimSpace(c.IssuerKey),
		Notary:       strings.TrimSpace(c.Notary),
		Status:       StatusUnspent,
	}

	var err error

	if s := strings.TrimSpace(c.IssuerRef); s != "" {
		if r.IssuerRef, err = hex.DecodeString(s); err != nil {
			return nil, errors.NewInvalidArgumentError("line %d: issuer_ref is not hex", line, err)
		}
	}

	if s := strings.TrimSpace(c.Contract); s != "" {
		if r.Contract, err = hex.DecodeString(s); err != nil {
			return nil, errors.NewInvalidArgumentError("line %d: contract is not hex", line, err)
		}
	}

	return r, nil
}

// ImportCSV parses states from r and adds them in one transaction. It returns the number added.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	rows := []*CSVRecord{}

	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return 0, errors.NewInvalidArgumentError("error parsing state csv", err)
	}

	records := make([]*StateRecord, 0, len(rows))

	for i, row := range rows {
		// line 1 is the header
		record, err := row.toStateRecord(i + 2)
		if err != nil {
			return 0, err
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return 0, nil
	}

	if err := s.Add(ctx, records...); err != nil {
		return 0, err
	}

	s.logger.Infof("[ImportCSV] imported %d states", len(records))

	return len(records), nil
}
