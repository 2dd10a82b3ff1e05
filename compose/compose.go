// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: compose.go — batch query composition across every table
//
// Purpose:
//   - Fans one batch of phone numbers across all eleven tables and
//     assembles one Row per input phone. Every table is optional: a
//     table whose registry slot has never been published is simply
//     omitted from the result rather than failing the whole query.
//
// Grounded on:
//   - ApiHandler.cpp's TargetHandler::onQueryComplete: the availability
//     checks (LIKELY(XMapping::isAvailable())), the per-table resize
//     dance, the two always-run LRN lookups (US then CA), the LERG
//     search-key policy (us_rn else ca_rn else pn), and the per-table
//     "absent" sentinel checks (== 0 / == PhoneNumber::NONE) that this
//     package mirrors as Go zero-value / ok=false checks.
// ─────────────────────────────────────────────────────────────────────────────

package compose

import (
	"callfwd/dno"
	"callfwd/membership"
	"callfwd/phonerec"
	"callfwd/prefixrec"
	"callfwd/registry"
	"callfwd/revindex"
	"callfwd/tables"
)

// Engine holds one registry slot per table. The zero value is a valid,
// fully empty engine (every slot reports tables.NotAvailable until a
// builder publishes to it).
type Engine struct {
	USLRN     registry.Slot[lrnData]
	CALRN     registry.Slot[lrnData]
	DNC       registry.Slot[*membership.Data]
	DNO       registry.Slot[*dno.Data]
	TollFree  registry.Slot[*membership.Data]
	Lerg      registry.Slot[*prefixrec.LergData]
	Youmail   registry.Slot[*phonerec.YoumailData]
	Geo       registry.Slot[*prefixrec.GeoData]
	Ftc       registry.Slot[*phonerec.FtcData]
	F404      registry.Slot[*phonerec.FailureData]
	F606      registry.Slot[*phonerec.FailureData]
}

// lrnData is the narrow interface compose needs from lrn.Data, kept local
// so this package doesn't have to import lrn just to name its type in a
// Slot (lrn.Data already satisfies this).
type lrnData interface {
	GetRNs(keys []uint64, w int, out []uint64, found []bool)
	InverseRNs(lo, hi uint64) *revindex.Cursor
}

// PublishUSLRN publishes a freshly built US LRN version (accepts anything
// satisfying lrnData, e.g. *lrn.Data, so callers outside this package
// never need to name the unexported interface type directly).
func (e *Engine) PublishUSLRN(d lrnData) { e.USLRN.Publish(d, nil) }

// PublishCALRN publishes a freshly built CA LRN version.
func (e *Engine) PublishCALRN(d lrnData) { e.CALRN.Publish(d, nil) }

// PublishDNC publishes a freshly built DNC version.
func (e *Engine) PublishDNC(d *membership.Data) { e.DNC.Publish(d, nil) }

// PublishTollFree publishes a freshly built toll-free version.
func (e *Engine) PublishTollFree(d *membership.Data) { e.TollFree.Publish(d, nil) }

// PublishDNO publishes a freshly built DNO version.
func (e *Engine) PublishDNO(d *dno.Data) { e.DNO.Publish(d, nil) }

// PublishLerg publishes a freshly built LERG version.
func (e *Engine) PublishLerg(d *prefixrec.LergData) { e.Lerg.Publish(d, nil) }

// PublishGeo publishes a freshly built Geo version.
func (e *Engine) PublishGeo(d *prefixrec.GeoData) { e.Geo.Publish(d, nil) }

// PublishYoumail publishes a freshly built Youmail version.
func (e *Engine) PublishYoumail(d *phonerec.YoumailData) { e.Youmail.Publish(d, nil) }

// PublishFtc publishes a freshly built FTC version.
func (e *Engine) PublishFtc(d *phonerec.FtcData) { e.Ftc.Publish(d, nil) }

// PublishF404 publishes a freshly built F404 version.
func (e *Engine) PublishF404(d *phonerec.FailureData) { e.F404.Publish(d, nil) }

// PublishF606 publishes a freshly built F606 version.
func (e *Engine) PublishF606(d *phonerec.FailureData) { e.F606.Publish(d, nil) }

// Row is one phone number's composed enrichment record. Every pointer
// field is nil when its table wasn't available for this query or had no
// row for this phone; it is non-nil only for a hit. HasDNC/HasDNO/
// HasTollFree report whether that table was available, and the paired
// bool whether the phone was found in it. HasRN reports whether either
// LRN table had a row. This mirrors the C++ "field == 0 / == NONE means
// absent" convention translated to Go zero values.
type Row struct {
	PN uint64

	HasRN bool
	RN    uint64 // routing number, US preferred over CA; phone.NONE if absent

	HasDNC      bool
	DNC         bool
	HasDNO      bool
	DNO         bool
	HasTollFree bool
	TollFree    bool

	Lerg    *prefixrec.LergRecord
	Youmail *phonerec.YoumailRecord
	Geo     *prefixrec.GeoRecord
	Ftc     *phonerec.FtcRecord
	F404    *phonerec.FailureRecord
	F606    *phonerec.FailureRecord
}

// Query runs the composed batch lookup for keys, windowed at w keys per
// table. The returned slice has one Row per key, in the same order.
func (e *Engine) Query(keys []uint64, w int) []Row {
	n := len(keys)
	rows := make([]Row, n)
	for i, pn := range keys {
		rows[i].PN = pn
	}

	usRN := make([]uint64, n)
	usFound := make([]bool, n)
	caRN := make([]uint64, n)
	caFound := make([]bool, n)

	if h, ok := e.USLRN.Acquire(); ok {
		h.Value().GetRNs(keys, w, usRN, usFound)
		h.Release()
	}
	if h, ok := e.CALRN.Acquire(); ok {
		h.Value().GetRNs(keys, w, caRN, caFound)
		h.Release()
	}
	for i := range rows {
		switch {
		case usFound[i]:
			rows[i].HasRN, rows[i].RN = true, usRN[i]
		case caFound[i]:
			rows[i].HasRN, rows[i].RN = true, caRN[i]
		}
	}

	if h, ok := e.DNC.Acquire(); ok {
		found := make([]bool, n)
		h.Value().GetMemberships(keys, w, found)
		h.Release()
		for i := range rows {
			rows[i].HasDNC, rows[i].DNC = true, found[i]
		}
	}

	if h, ok := e.DNO.Acquire(); ok {
		found := make([]bool, n)
		h.Value().GetDNOs(keys, w, found)
		h.Release()
		for i := range rows {
			rows[i].HasDNO, rows[i].DNO = true, found[i]
		}
	}

	if h, ok := e.TollFree.Acquire(); ok {
		found := make([]bool, n)
		h.Value().GetMemberships(keys, w, found)
		h.Release()
		for i := range rows {
			rows[i].HasTollFree, rows[i].TollFree = true, found[i]
		}
	}

	if h, ok := e.Lerg.Acquire(); ok {
		// LERG key policy: the resolved routing number (US preferred
		// over CA) when ported, else the bare phone number.
		searchKeys := make([]uint64, n)
		for i := range rows {
			if rows[i].HasRN {
				searchKeys[i] = rows[i].RN
			} else {
				searchKeys[i] = keys[i]
			}
		}
		out := make([]prefixrec.LergRecord, n)
		found := make([]bool, n)
		h.Value().GetLergs(searchKeys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].Lerg = &rec
			}
		}
	}

	if h, ok := e.Youmail.Acquire(); ok {
		out := make([]phonerec.YoumailRecord, n)
		found := make([]bool, n)
		h.Value().GetYoumails(keys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].Youmail = &rec
			}
		}
	}

	if h, ok := e.Geo.Acquire(); ok {
		out := make([]prefixrec.GeoRecord, n)
		found := make([]bool, n)
		h.Value().GetGeos(keys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].Geo = &rec
			}
		}
	}

	if h, ok := e.Ftc.Acquire(); ok {
		out := make([]phonerec.FtcRecord, n)
		found := make([]bool, n)
		h.Value().GetFtcs(keys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].Ftc = &rec
			}
		}
	}

	if h, ok := e.F404.Acquire(); ok {
		out := make([]phonerec.FailureRecord, n)
		found := make([]bool, n)
		h.Value().GetFailures(keys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].F404 = &rec
			}
		}
	}

	if h, ok := e.F606.Acquire(); ok {
		out := make([]phonerec.FailureRecord, n)
		found := make([]bool, n)
		h.Value().GetFailures(keys, w, out, found)
		h.Release()
		for i := range rows {
			if found[i] {
				rec := out[i]
				rows[i].F606 = &rec
			}
		}
	}

	return rows
}

// IsAvailable reports whether at least one of the LRN tables (the gate the original
// source checks before handling any request at all — ApiHandlerFactory::
// makeHandler's PhoneMapping::isAvailable() check) have been published.
func (e *Engine) IsAvailable() bool {
	return e.USLRN.IsAvailable() || e.CALRN.IsAvailable()
}

// Reverse returns every (pn, rn) pair with rn in [lo, hi) from both the
// US and CA LRN tables, US first, matching ReverseHandler::sendBody's
// us-then-ca ordering. Returns tables.NotAvailable if neither slot has
// ever been published.
func (e *Engine) Reverse(lo, hi uint64, yield func(pn, rn uint64)) error {
	usH, usOK := e.USLRN.Acquire()
	caH, caOK := e.CALRN.Acquire()
	if !usOK && !caOK {
		return tables.NotAvailable
	}
	if usOK {
		scanInverse(usH.Value(), lo, hi, yield)
		usH.Release()
	}
	if caOK {
		scanInverse(caH.Value(), lo, hi, yield)
		caH.Release()
	}
	return nil
}

func scanInverse(d lrnData, lo, hi uint64, yield func(pn, rn uint64)) {
	c := d.InverseRNs(lo, hi)
	for c.HasRow() {
		yield(c.CurrentPrimary(), c.CurrentSecondary())
		c.Advance()
	}
}
