package redis

import "fmt"

// Key format: "ratelimit:{ip}"
func FormatRateLimitKey(chave string) string {
	return fmt.Sprintf("ratelimit:%s", chave)
}

// Key format: "ranking:{nome}"
func FormatRankingKey(nome string) string {
	return fmt.Sprintf("ranking:%s", nome)
}
