package robokassa

import "testing"

func TestVerifyResultSignature_RoundTrip(t *testing.T) {
	shp := map[string]string{"Shp_booking": "31337"}

	base := BuildResultSignatureBase("1400.00", "42", "pass2", shp)
	sig, err := Sign(base, HashSHA256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifyResultSignature("1400.00", 42, sig, "pass2", shp, HashSHA256) {
		t.Fatal("expected signature to verify")
	}
	if !VerifyResultSignature("1400.00", 42, sig, "pass2", shp, "") {
		t.Fatal("expected empty algo to default to SHA256")
	}
	if VerifyResultSignature("1400.00", 42, sig, "wrong", shp, HashSHA256) {
		t.Fatal("expected wrong password to fail")
	}
	if VerifyResultSignature("1400.00", 42, "", "pass2", shp, HashSHA256) {
		t.Fatal("expected empty signature to fail")
	}
}

func TestVerifyResultSignature_ConfiguredAlgorithm(t *testing.T) {
	base := BuildResultSignatureBase("1400.00", "42", "pass2", nil)
	sig, err := Sign(base, HashMD5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifyResultSignature("1400.00", 42, sig, "pass2", nil, HashMD5) {
		t.Fatal("expected MD5-signed callback to verify under MD5 config")
	}
	if VerifyResultSignature("1400.00", 42, sig, "pass2", nil, HashSHA256) {
		t.Fatal("expected MD5 signature to fail SHA256 verification")
	}
}

func TestVerifySuccessSignature_ConfiguredAlgorithm(t *testing.T) {
	base := BuildSuccessSignatureBase("1400.00", "42", "pass1", nil)
	sig, err := Sign(base, HashMD5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !VerifySuccessSignature("1400.00", 42, sig, "pass1", nil, HashMD5) {
		t.Fatal("expected MD5-signed redirect to verify under MD5 config")
	}
}

func TestParseWebhookForm(t *testing.T) {
	payload, err := ParseWebhookForm(map[string][]string{
		"OutSum":         {"1400.00"},
		"InvId":          {"42"},
		"SignatureValue": {"deadbeef"},
		"Shp_booking":    {"31337"},
		"ignored":        {"x"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.InvID != 42 || payload.OutSum != "1400.00" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Shp["Shp_booking"] != "31337" {
		t.Fatalf("expected Shp_booking to be preserved, got %+v", payload.Shp)
	}
	if len(payload.Shp) != 1 {
		t.Fatalf("expected only Shp_ params, got %+v", payload.Shp)
	}
}

func TestParseWebhookForm_MissingFields(t *testing.T) {
	if _, err := ParseWebhookForm(map[string][]string{"InvId": {"1"}}); err == nil {
		t.Fatal("expected error for missing OutSum")
	}
	if _, err := ParseWebhookForm(map[string][]string{
		"OutSum": {"1"}, "InvId": {"abc"}, "SignatureValue": {"x"},
	}); err == nil {
		t.Fatal("expected error for non-numeric InvId")
	}
}

func TestAmountsEqual(t *testing.T) {
	a, err := ParseAmount("1400.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseAmount("1400")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !AmountsEqual(a, b) {
		t.Fatal("expected 1400.00 == 1400")
	}
}
