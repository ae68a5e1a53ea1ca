package vault

import (
	"strconv"
	"strings"
)

// RefPredicate renders ((tx_id = $n AND output_index = $n+1) OR ...) for refs with placeholders
// numbered from first, and returns the matching arguments. Empty refs render a false predicate.
func RefPredicate(refs []OutputRef, first int) (string, []interface{}) {
	if len(refs) == 0 {
		return "(1 = 0)", nil
	}

	var sb strings.Builder

	args := make([]interface{}, 0, len(refs)*2)
	n := first

	sb.WriteString("(")

	for i, ref := range refs {
		if i > 0 {
			sb.WriteString(" OR ")
		}

		sb.WriteString("(tx_id = $")
		sb.WriteString(strconv.Itoa(n))
		sb.WriteString(" AND output_index = $")
		sb.WriteString(strconv.Itoa(n + 1))
		sb.WriteString(")")

		args = append(args, ref.TxID, int64(ref.Index))
		n += 2
	}

	sb.WriteString(")")

	return sb.String(), args
}

// Refs returns the refs of records in order.
func Refs(records []*StateRecord) []OutputRef {
	refs := make([]OutputRef, len(records))
	for i, r := range records {
		refs[i] = r.Ref
	}

	return refs
}
