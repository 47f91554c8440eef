package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/secmon-lab/safetydocs/pkg/domain/types"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	gt.NoError(t, err).Required()
	return d
}

func TestTemplateApplies(t *testing.T) {
	tmpl := &model.HazardTemplate{Season: types.SeasonAll, IndoorOutdoor: types.Outdoor}
	gt.Bool(t, tmpl.Applies(types.SeasonWinter, types.Outdoor)).True()
	gt.Bool(t, tmpl.Applies(types.SeasonWinter, types.Indoor)).False()
	gt.Bool(t, tmpl.Applies("", "")).True()
}

func TestParticipantSigning(t *testing.T) {
	now := mustDate(t, "2026-05-04")
	p := &model.Participant{SignatureType: types.SignaturePending}

	p.SignDigital("data:image/png;base64,AAAA", now)
	gt.Value(t, p.SignatureType).Equal(types.SignatureDigital)
	gt.Value(t, p.SignatureData).Equal("data:image/png;base64,AAAA")
	gt.Value(t, *p.SignedAt).Equal(now)

	p.SignAnalog(now)
	gt.Value(t, p.SignatureType).Equal(types.SignatureAnalog)
	gt.Value(t, p.SignatureData).Equal("")
}

func TestUserFullName(t *testing.T) {
	gt.Value(t, (&model.User{FirstName: "Anna", LastName: "Berg"}).FullName()).Equal("Anna Berg")
	gt.Value(t, (&model.User{LastName: "Berg"}).FullName()).Equal("Berg")
}
