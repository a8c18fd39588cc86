package topology

import "strings"

// ShortenName strips the first matching host-domain suffix from name.
func ShortenName(name string, domains []string) string {
	name = strings.TrimSpace(name)

	for _, domain := range domains {
		if domain == "" {
			continue
		}

		if !strings.HasPrefix(domain, ".") {
			domain = "." + domain
		}

		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(domain)) {
			return name[:len(name)-len(domain)]
		}
	}

	return name
}
