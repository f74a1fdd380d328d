package robokassa

import (
	"fmt"
	"strconv"
	"strings"
)

// defaultAlgo is used when none is configured. RoboKassa recommends
// SHA256 for all new integrations.
const defaultAlgo = HashSHA256

// WebhookPayload represents RoboKassa ResultURL data.
// The gateway posts form parameters, not JSON.
type WebhookPayload struct {
	OutSum         string
	InvID          int64
	SignatureValue string
	Shp            map[string]string
}

// VerifyResultSignature validates the ResultURL signature:
// Hash(OutSum:InvId:Password2[:Shp_params]). The algorithm must match the
// one the merchant is configured for; an empty algo means SHA256.
func VerifyResultSignature(outSum string, invID int64, signature, password2 string, shp map[string]string, algo HashAlgorithm) bool {
	return verifyWithPassword(BuildResultSignatureBase(outSum, strconv.FormatInt(invID, 10), password2, shp), signature, password2, algo)
}

// VerifySuccessSignature validates the SuccessURL redirect signature:
// Hash(OutSum:InvId:Password1[:Shp_params]).
func VerifySuccessSignature(outSum string, invID int64, signature, password1 string, shp map[string]string, algo HashAlgorithm) bool {
	return verifyWithPassword(BuildSuccessSignatureBase(outSum, strconv.FormatInt(invID, 10), password1, shp), signature, password1, algo)
}

func verifyWithPassword(base, signature, password string, algo HashAlgorithm) bool {
	if password == "" || signature == "" {
		return false
	}
	if algo == "" {
		algo = defaultAlgo
	}
	expected, err := Sign(base, algo)
	if err != nil {
		return false
	}
	return VerifySignature(expected, signature)
}

// ParseWebhookForm parses form-encoded webhook data into a structured payload.
func ParseWebhookForm(formValues map[string][]string) (*WebhookPayload, error) {
	outSum := getFirstValue(formValues, "OutSum")
	invIDStr := getFirstValue(formValues, "InvId")
	signature := getFirstValue(formValues, "SignatureValue")

	if outSum == "" {
		return nil, fmt.Errorf("OutSum is required")
	}
	if invIDStr == "" {
		return nil, fmt.Errorf("InvId is required")
	}
	if signature == "" {
		return nil, fmt.Errorf("SignatureValue is required")
	}

	invID, err := strconv.ParseInt(invIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid InvId: %w", err)
	}

	// Preserve original Shp key casing; it is part of the signature base.
	shp := make(map[string]string)
	for key, values := range formValues {
		if !strings.HasPrefix(strings.ToLower(key), "shp_") || len(values) == 0 {
			continue
		}
		shp[key] = values[0]
	}

	return &WebhookPayload{
		OutSum:         outSum,
		InvID:          invID,
		SignatureValue: signature,
		Shp:            shp,
	}, nil
}

// getFirstValue extracts the first form value with case-insensitive key lookup.
func getFirstValue(values map[string][]string, key string) string {
	for k, v := range values {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
