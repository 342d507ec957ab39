package domain

import "testing"

func TestTone_IsGenerated(t *testing.T) {
	t.Parallel()

	for _, tone := range []Tone{ToneFriendly, ToneProfessional, ToneCreative, ToneFormal} {
		if !tone.IsGenerated() {
			t.Errorf("%s should be a generated tone", tone)
		}
	}
	if ToneManual.IsGenerated() {
		t.Error("manual should not be a generated tone")
	}
	if !ToneManual.IsValid() {
		t.Error("manual should be a valid stored tone")
	}
	if Tone("angry").IsValid() {
		t.Error("unknown tone should be invalid")
	}
}

func TestCultureContext_IsGenerated(t *testing.T) {
	t.Parallel()

	if CultureManual.IsGenerated() {
		t.Error("manual should not be a generated culture")
	}
	if !CultureHybrid.IsGenerated() {
		t.Error("hybrid should be a generated culture")
	}
}

func TestPlatform_IsValid(t *testing.T) {
	t.Parallel()

	tests := map[Platform]bool{
		PlatformFacebook:  true,
		PlatformInstagram: true,
		PlatformTwitter:   true,
		PlatformTelegram:  true,
		"linkedin":        false,
		"":                false,
	}
	for p, want := range tests {
		if got := p.IsValid(); got != want {
			t.Errorf("Platform(%q).IsValid() = %v, want %v", p, got, want)
		}
	}
	if DefaultPlatform != PlatformFacebook {
		t.Errorf("default platform: got %s", DefaultPlatform)
	}
}

func TestCardStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []CardStatus{
		CardStatusDraft, CardStatusReadyForReview, CardStatusUnderReview,
		CardStatusScheduled, CardStatusRejected, CardStatusInLibrary,
	} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if CardStatus("Published").IsValid() {
		t.Error("Published is not a card status")
	}
}
