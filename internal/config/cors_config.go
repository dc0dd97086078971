package config

import "strings"

type Cors struct {
	values envValues
}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

func (c Cors) GetAllowedOrigins() AllowedOrigins {
	origins := make(AllowedOrigins, len(c.values.AllowedOrigins))
	for _, origin := range c.values.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		origins[origin] = struct{}{}
	}
	return origins
}

func (c Cors) GetAllowedMethods() string {
	return c.values.AllowedMethods
}

func (c Cors) GetAllowedHeaders() string {
	return c.values.AllowedHeaders
}
