package robokassa

import (
	"context"
	"net/url"
	"testing"
)

func paymentURLQuery(t *testing.T, link *PaymentLink) url.Values {
	t.Helper()
	u, err := url.Parse(link.PaymentURL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return u.Query()
}

func TestCreatePayment_SignsWithConfiguredAlgorithm(t *testing.T) {
	client := NewClient(Config{
		MerchantLogin: "lumen",
		Password1:     "pass1",
		HashAlgo:      HashMD5,
	})

	link, err := client.CreatePayment(context.Background(), PaymentRequest{Amount: 1400, InvID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := BuildStartSignatureBase("lumen", "1400.00", "42", "pass1", nil)
	want, err := Sign(base, HashMD5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := paymentURLQuery(t, link)
	if got := q.Get("SignatureValue"); got != want {
		t.Fatalf("expected MD5 signature %s, got %s", want, got)
	}

	// The webhook side must accept a callback signed with the same bases.
	resultBase := BuildResultSignatureBase("1400.00", "42", "pass2", nil)
	sig, err := Sign(resultBase, HashMD5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !VerifyResultSignature("1400.00", 42, sig, "pass2", nil, HashMD5) {
		t.Fatal("expected MD5 callback to verify under the client's algorithm")
	}
}

func TestCreatePayment_RedirectOverridesAndTestMode(t *testing.T) {
	client := NewClient(Config{
		MerchantLogin: "lumen",
		Password1:     "pass1",
		TestMode:      true,
		SuccessURL:    "https://api.lumen.example/webhooks/robokassa/success",
		FailURL:       "https://api.lumen.example/webhooks/robokassa/fail",
	})

	link, err := client.CreatePayment(context.Background(), PaymentRequest{
		Amount: 100,
		InvID:  7,
		Shp:    map[string]string{"booking": "b1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := paymentURLQuery(t, link)
	if got := q.Get("SuccessUrl2"); got != "https://api.lumen.example/webhooks/robokassa/success" {
		t.Fatalf("unexpected SuccessUrl2: %s", got)
	}
	if got := q.Get("FailUrl2"); got != "https://api.lumen.example/webhooks/robokassa/fail" {
		t.Fatalf("unexpected FailUrl2: %s", got)
	}
	if q.Get("IsTest") != "1" {
		t.Fatal("expected IsTest=1 in test mode")
	}
	if got := q.Get("Shp_booking"); got != "b1" {
		t.Fatalf("expected custom param to be prefixed, got %q", got)
	}
}

func TestCreatePayment_Validation(t *testing.T) {
	client := NewClient(Config{MerchantLogin: "lumen", Password1: "pass1"})

	if _, err := client.CreatePayment(context.Background(), PaymentRequest{Amount: 0, InvID: 1}); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
	if _, err := client.CreatePayment(context.Background(), PaymentRequest{Amount: 100, InvID: 0}); err == nil {
		t.Fatal("expected error for non-positive invoice ID")
	}

	empty := NewClient(Config{})
	if _, err := empty.CreatePayment(context.Background(), PaymentRequest{Amount: 100, InvID: 1}); err == nil {
		t.Fatal("expected error for missing merchant credentials")
	}
}
