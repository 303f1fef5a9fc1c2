package budpay

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

var (
	firstNames = []string{
		"Ade", "Bola", "Chidi", "Dayo", "Emeka", "Funmi", "Gbenga",
		"Ifeoma", "Kunle", "Ngozi", "Segun", "Tunde", "Uche", "Yemi",
	}
	lastNames = []string{
		"Adeyemi", "Balogun", "Chukwu", "Eze", "Ibrahim", "Lawal",
		"Nwosu", "Obi", "Okafor", "Okonkwo", "Olawale", "Uzo",
	}
)

// accountHolderName picks a plausible display name for a virtual
// account. The gateway requires one but nothing downstream keys on it.
func accountHolderName() string {
	first := firstNames[rand.Intn(len(firstNames))]
	last := lastNames[rand.Intn(len(lastNames))]
	return first + " " + last
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

func parsePaidAt(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
