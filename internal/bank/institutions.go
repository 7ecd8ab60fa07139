package bank

import (
	"regexp"

	"github.com/wakala/banksync/internal/domain"
)

var ingRemittanceRe = regexp.MustCompile(`remittanceinformation:(.*)$`)

// Institutions returns the variants for institutions with known defects.
// Each call builds fresh values.
func Institutions() []*Variant {
	return []*Variant{
		{
			Label:          "ing_de",
			InstitutionIDs: []string{"ING_INGDDEFF"},
			Fixups:         []Fixup{CaptureRemittance(ingRemittanceRe)},
			SortDates:      []DateField{ValueDate, BookingDate},
			TieBreak:       ByNumericIDDesc,
		},
		{
			Label:          "american_express",
			InstitutionIDs: []string{"AMERICAN_EXPRESS_AESUDEF1"},
			Account:        []AccountFixup{AsCredit()},
			Fixups:         []Fixup{InvertSign()},
			Balance:        Negate(Prefer(domain.BalanceInformation)),
		},
		{
			Label:          "lhv",
			InstitutionIDs: []string{"LHV_LHVBEE22"},
			Fixups:         []Fixup{OnlyPending(ExtractFromText(CardPurchase))},
		},
		{
			Label:          "swedbank_baltics",
			InstitutionIDs: []string{"SWEDBANK_HABALV22", "SWEDBANK_HABAEE2X", "SWEDBANK_HABALT22"},
			Fixups:         []Fixup{OnlyPending(ExtractFromText(BalticCardPurchase))},
		},
		{
			Label:          "nationwide",
			InstitutionIDs: []string{"NATIONWIDE_NAIAGB21"},
			Fixups: []Fixup{
				KeepIDIf(IDLength(40)),
				OnlyPending(ClearID()),
			},
		},
		{
			Label:          "virgin",
			InstitutionIDs: []string{"VIRGIN_NRNBGB22"},
			Fixups:         []Fixup{KeepIDIf(NotPlaceholder)},
		},
		{
			Label:          "nbg",
			InstitutionIDs: []string{"NBG_ETHNGRAAXXX"},
			Fixups:         []Fixup{OnlyPending(InvertSign())},
		},
		{
			Label:          "belfius",
			InstitutionIDs: []string{"BELFIUS_GKCCBEBB"},
			Fixups:         []Fixup{UseInternalID()},
		},
		{
			Label:          "ing_ro",
			InstitutionIDs: []string{"ING_INGBROBU"},
			Fixups:         []Fixup{SkipPending()},
		},
		{
			Label:          "abanca",
			InstitutionIDs: []string{"ABANCA_CAGLESMM", "ABANCA_CAGLPTPL"},
			Fixups: []Fixup{
				NameFrom(StructuredRemittance),
				PreferDates(ValueDate, ValueDateTime, BookingDate, BookingDateTime),
			},
		},
		{
			Label:          "seb_kort",
			InstitutionIDs: []string{"SEB_KORT_AB_NO_SKHSFI21", "SEB_KORT_AB_SE_SKHSFI21"},
			Account:        []AccountFixup{AsCredit()},
			Fixups: []Fixup{
				InvertSign(),
				NameFrom(AdditionalInformation),
			},
			Balance: Negate(Sum(
				Prefer(domain.BalanceExpected),
				Prefer(domain.BalanceNonInvoiced),
			)),
		},
		{
			Label: "sparkasse",
			InstitutionIDs: []string{
				"SPK_KARLSRUHE_KARSDE66XXX",
				"SPK_MARBURG_BIEDENKOPF_HELADEF1MAR",
				"SPK_WORMS_ALZEY_RIED_MALADE51WOR",
				"SSK_DUSSELDORF_DUSSDEDDXXX",
			},
			Fixups: []Fixup{RemittanceFromStructured()},
		},
		{
			Label:          "danske_bank",
			InstitutionIDs: []string{"DANSKEBANK_DABANO22", "DANSKEBANK_DABADKKK"},
			Fixups:         []Fixup{ExtractFromText(DanishCardPurchase)},
			Balance:        Prefer(domain.BalanceInterimAvailable),
		},
	}
}
