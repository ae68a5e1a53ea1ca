package selection

import (
	"strconv"
	"strings"

	"github.com/bsv-blockchain/utxolock/stores/vault"
)

// scanOrder is stable for a fixed snapshot since (tx_id, output_index) is the primary key.
const scanOrder = "tx_id, output_index"

// params numbers placeholders as values are bound. Caller values only ever reach the query
// through here.
type params struct {
	args []interface{}
}

func (p *params) bind(v interface{}) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

func (p *params) bindAll(n int, v func(i int) interface{}) string {
	placeholders := make([]string, n)
	for i := 0; i < n; i++ {
		placeholders[i] = p.bind(v(i))
	}

	return strings.Join(placeholders, ", ")
}

// buildFilter renders the candidate predicate for c. Unset optional filters are left out.
func buildFilter(p *params, c *Criteria) string {
	conditions := []string{
		"state_status = " + p.bind(int64(vault.StatusUnspent)),
		"denomination = " + p.bind(c.Denomination),
		"(lock_id IS NULL OR lock_id = " + p.bind(c.LockID.String()) + ")",
	}

	if c.Notary != "" {
		conditions = append(conditions, "notary_name = "+p.bind(c.Notary))
	}

	if len(c.IssuerKeys) > 0 {
		conditions = append(conditions, "issuer_key IN ("+p.bindAll(len(c.IssuerKeys), func(i int) interface{} {
			return c.IssuerKeys[i]
		})+")")
	}

	if len(c.IssuerRefs) > 0 {
		conditions = append(conditions, "issuer_ref IN ("+p.bindAll(len(c.IssuerRefs), func(i int) interface{} {
			return c.IssuerRefs[i]
		})+")")
	}

	return strings.Join(conditions, "\n\t\tAND ")
}
