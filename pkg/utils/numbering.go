package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MonthPrefix builds the year/month document prefix, e.g. "POS/2026/08"
func MonthPrefix(prefix string, t time.Time) string {
	return fmt.Sprintf("%s/%d/%02d", prefix, t.Year(), int(t.Month()))
}

// DocumentName builds a sequential document name within a month,
// e.g. "ORD/2026/08/0042"
func DocumentName(prefix string, t time.Time, seq int64) string {
	return fmt.Sprintf("%s/%04d", MonthPrefix(prefix, t), seq)
}

// GenerateReceiptNo generates a unique receipt number
func GenerateReceiptNo() string {
	return "RCP-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateCustomerCode generates a unique customer code
func GenerateCustomerCode() string {
	return "CUST-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode generates a unique product code
func GenerateProductCode() string {
	return "PROD-" + strings.ToUpper(uuid.New().String()[:8])
}

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")

	reg := regexp.MustCompile("[^a-z0-9-]")
	s = reg.ReplaceAllString(s, "")

	reg = regexp.MustCompile("-+")
	s = reg.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
