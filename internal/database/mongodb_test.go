package database

import "testing"

func TestDatabaseFromURI(t *testing.T) {
	cases := []struct {
		uri      string
		fallback string
		want     string
	}{
		{"mongodb://localhost/datagenie", "fallback", "datagenie"},
		{"mongodb://localhost:27017/testdb?retryWrites=true", "fallback", "testdb"},
		{"mongodb://localhost:27017", "fallback", "fallback"},
		{"mongodb://localhost:27017/", "fallback", "fallback"},
		{"mongodb+srv://user:pw@cluster0.example.net/prod", "fallback", "prod"},
	}
	for _, c := range cases {
		if got := DatabaseFromURI(c.uri, c.fallback); got != c.want {
			t.Errorf("DatabaseFromURI(%q) = %q, want %q", c.uri, got, c.want)
		}
	}
}
