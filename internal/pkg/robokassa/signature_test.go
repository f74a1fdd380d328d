package robokassa

import "testing"

func TestBuildStartSignatureBase_SortedShpAndEncoded(t *testing.T) {
	base := BuildStartSignatureBase(
		"merchant",
		"1400.00",
		"42",
		"pass1",
		map[string]string{
			"Shp_booking":  "b/42",
			"Shp_customer": "c+1",
		},
	)

	expected := "merchant:1400.00:42:pass1:Shp_booking=b%2F42:Shp_customer=c%2B1"
	if base != expected {
		t.Fatalf("unexpected base string:\nwant %s\ngot  %s", expected, base)
	}
}

func TestBuildResultSignatureBase_NoShp(t *testing.T) {
	base := BuildResultSignatureBase("100.00", "7", "pass2", nil)
	if base != "100.00:7:pass2" {
		t.Fatalf("unexpected base string: %s", base)
	}
}

func TestVerifySignature_CaseInsensitive(t *testing.T) {
	if !VerifySignature("aBcD", "ABcd") {
		t.Fatal("expected case-insensitive constant-time comparison")
	}
	if VerifySignature("abcd", "abce") {
		t.Fatal("expected mismatch to fail")
	}
}

func TestSign_SHA256(t *testing.T) {
	sig, err := Sign("abc", HashSHA256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Fatalf("unexpected hash: %s", sig)
	}
}

func TestSign_MD5(t *testing.T) {
	sig, err := Sign("abc", HashMD5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("unexpected hash: %s", sig)
	}
}

func TestNormalizeHashAlgorithm(t *testing.T) {
	algo, err := NormalizeHashAlgorithm(" sha256 ")
	if err != nil || algo != HashSHA256 {
		t.Fatalf("expected SHA256, got %s (%v)", algo, err)
	}
	if _, err := NormalizeHashAlgorithm("sha1"); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
}
