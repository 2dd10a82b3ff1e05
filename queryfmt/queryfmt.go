// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: queryfmt.go — response encoders for a composed query batch
//
// Purpose:
//   - Renders a []compose.Row as either newline-delimited text or a JSON
//     array, matching the two response bodies TargetHandler::
//     onQueryComplete builds depending on the request's Accept header.
//
// Grounded on:
//   - ApiHandler.cpp's lrn_str/dnc_str/.../f606_str field composition and
//     its per-row "{a, b, c, ...}" text layout and "{...},\n" / "{...}\n"
//     JSON-array layout (comma on every row but the last).
//   - JSON encoding reuses the teacher's own sonnet dependency
//     (github.com/sugawarayuuta/sonnet), already imported by
//     syncharvester.go for EthereumBlockResponse/EthereumLogsResponse
//     decoding — used here for the encode side of the same library.
// ─────────────────────────────────────────────────────────────────────────────

package queryfmt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sugawarayuuta/sonnet"

	"callfwd/compose"
)

// jsonRow is the wire shape of one record in the JSON array response.
type jsonRow struct {
	PN       uint64  `json:"pn"`
	RN       *uint64 `json:"rn"`
	IsDNC    string  `json:"is_dnc"`
	IsDNO    string  `json:"is_dno"`
	IsTollFree string `json:"is_tollfree"`

	OCN        *string `json:"ocn"`
	Operator   *string `json:"operator"`
	OCNType    *string `json:"ocn_type"`
	LATA       *string `json:"lata"`
	RateCenter *string `json:"rate_center"`
	Country    *string `json:"country"`

	YoumailSpamScore       *string `json:"youmail_spam_score"`
	YoumailFraudProbability *string `json:"youmail_fraud_probability"`
	YoumailUnlawful        *string `json:"youmail_unlawful"`
	YoumailTCPAFraud       *string `json:"youmail_tcpa_fraud_probability"`

	Zipcode   *string `json:"zipcode"`
	County    *string `json:"county"`
	City      *string `json:"city"`
	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
	Timezone  *string `json:"timezone"`

	IsFTC          string  `json:"is_ftc"`
	FirstFTCOn     *string `json:"first_ftc_on"`
	LastFTCOn      *string `json:"last_ftc_on"`
	FTCCount       *string `json:"ftc_count"`

	First404On *string `json:"first_404_on"`
	Last404On  *string `json:"last_404_on"`

	First6xxOn *string `json:"first_6xx_on"`
	Last6xxOn  *string `json:"last_6xx_on"`
}

func yesNo(has, v bool) string {
	if has && v {
		return "yes"
	}
	return "no"
}

func toJSONRow(r compose.Row) jsonRow {
	jr := jsonRow{
		PN:         r.PN,
		IsDNC:      yesNo(r.HasDNC, r.DNC),
		IsDNO:      yesNo(r.HasDNO, r.DNO),
		IsTollFree: yesNo(r.HasTollFree, r.TollFree),
		IsFTC:      "no",
	}
	if r.HasRN {
		rn := r.RN
		jr.RN = &rn
	}
	if r.Lerg != nil {
		jr.OCN = &r.Lerg.OCN
		jr.Operator = &r.Lerg.Company
		jr.OCNType = &r.Lerg.OCNType
		jr.LATA = &r.Lerg.LATA
		jr.RateCenter = &r.Lerg.RateCenter
		jr.Country = &r.Lerg.Country
	}
	if r.Youmail != nil {
		jr.YoumailSpamScore = &r.Youmail.SpamScore
		jr.YoumailFraudProbability = &r.Youmail.FraudProbability
		jr.YoumailUnlawful = &r.Youmail.Unlawful
		jr.YoumailTCPAFraud = &r.Youmail.TCPAFraud
	}
	if r.Geo != nil {
		jr.Zipcode = &r.Geo.Zipcode
		jr.County = &r.Geo.County
		jr.City = &r.Geo.City
		jr.Latitude = &r.Geo.Latitude
		jr.Longitude = &r.Geo.Longitude
		jr.Timezone = &r.Geo.Timezone
	}
	if r.Ftc != nil {
		jr.IsFTC = "yes"
		jr.FirstFTCOn = &r.Ftc.FirstComplaint
		jr.LastFTCOn = &r.Ftc.LastComplaint
		jr.FTCCount = &r.Ftc.ComplaintCount
	}
	if r.F404 != nil {
		jr.First404On = &r.F404.FirstSeen
		jr.Last404On = &r.F404.LastSeen
	}
	if r.F606 != nil {
		jr.First6xxOn = &r.F606.FirstSeen
		jr.Last6xxOn = &r.F606.LastSeen
	}
	return jr
}

// WriteJSON encodes rows as a JSON array via sonnet, one object per row.
func WriteJSON(w io.Writer, rows []compose.Row) error {
	out := make([]jsonRow, len(rows))
	for i, r := range rows {
		out[i] = toJSONRow(r)
	}
	enc := sonnet.NewEncoder(w)
	return enc.Encode(out)
}

// WriteText renders rows as "pn=...,lrn=...,is_dno=...,is_dnc=...,..." lines, one row
// per line, matching the non-JSON branch of onQueryComplete field-for-field
// (field order: lrn, dno, dnc, tollfree, lerg, youmail, geo, ftc, f404,
// f606 — kept exactly as the original emits them despite the field-name
// drift between dno/dnc order in the struct vs. the record tuple).
func WriteText(w io.Writer, rows []compose.Row) error {
	for _, r := range rows {
		line := textLine(r)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

func textLine(r compose.Row) string {
	lrn := "lrn=null"
	if r.HasRN {
		lrn = "lrn=" + strconv.FormatUint(r.RN, 10)
	}

	lerg := "ocn=null, operator=null, ocn_type=null, lata=null, rate_center=null, country=null"
	if r.Lerg != nil {
		lerg = fmt.Sprintf("ocn=%s, operator=%s, ocn_type=%s, lata=%s, rate_center=%s, country=%s",
			r.Lerg.OCN, r.Lerg.Company, r.Lerg.OCNType, r.Lerg.LATA, r.Lerg.RateCenter, r.Lerg.Country)
	}

	youmail := "youmail_spam_score=null, youmail_fraud_probability=null, youmail_unlawful=null, youmail_tcpa_fraud_probability=null"
	if r.Youmail != nil {
		youmail = fmt.Sprintf("youmail_spam_score=%s, youmail_fraud_probability=%s, youmail_unlawful=%s, youmail_tcpa_fraud_probability=%s",
			r.Youmail.SpamScore, r.Youmail.FraudProbability, r.Youmail.Unlawful, r.Youmail.TCPAFraud)
	}

	geo := "zipcode=null, county=null, city=null, latitude=null, longitude=null, timezone=null"
	if r.Geo != nil {
		geo = fmt.Sprintf("zipcode=%s, county=%s, city=%s, latitude=%s, longitude=%s, timezone=%s",
			r.Geo.Zipcode, r.Geo.County, r.Geo.City, r.Geo.Latitude, r.Geo.Longitude, r.Geo.Timezone)
	}

	ftc := "is_ftc=no, last_ftc_on=null, first_ftc_on=null, ftc_count=null"
	if r.Ftc != nil {
		ftc = fmt.Sprintf("is_ftc=yes, last_ftc_on=%s, first_ftc_on=%s, ftc_count=%s",
			r.Ftc.LastComplaint, r.Ftc.FirstComplaint, r.Ftc.ComplaintCount)
	}

	f404 := "first_404_on=null, last_404_on=null"
	if r.F404 != nil {
		f404 = fmt.Sprintf("first_404_on=%s, last_404_on=%s", r.F404.FirstSeen, r.F404.LastSeen)
	}

	f606 := "first_6xx_on=null, last_6xx_on=null"
	if r.F606 != nil {
		f606 = fmt.Sprintf("first_6xx_on=%s, last_6xx_on=%s", r.F606.FirstSeen, r.F606.LastSeen)
	}

	return fmt.Sprintf("pn=%d,%s,is_dno=%s,is_dnc=%s,is_tollfree=%s,%s,%s,%s,%s,%s,%s\n",
		r.PN, lrn, yesNo(r.HasDNO, r.DNO), yesNo(r.HasDNC, r.DNC), yesNo(r.HasTollFree, r.TollFree),
		lerg, youmail, geo, ftc, f404, f606)
}
