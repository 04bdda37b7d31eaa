package ingest

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxTags caps the tags of an ingested article.
const maxTags = 6

// Bucket holds the items routed to one topic.
type Bucket struct {
	Topic TopicRule
	Items []Item
}

// Categorize routes items to every topic whose keywords they match. Buckets
// follow the topic order of the config.
func Categorize(items []Item, topics Topics) []Bucket {
	buckets := make([]Bucket, len(topics))
	for i, t := range topics {
		buckets[i].Topic = t
		m := newMatcher(t.Keywords)
		for _, item := range items {
			if m.match(item) {
				buckets[i].Items = append(buckets[i].Items, item)
			}
		}
	}
	return buckets
}

// Short keywords are mostly acronyms ("mfa", "siem") and only match as
// whole words; longer ones match anywhere.
const shortKeyword = 4

type matcher struct {
	words   []*regexp.Regexp
	phrases []string
}

func newMatcher(keywords []string) matcher {
	var m matcher
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if utf8.RuneCountInString(kw) <= shortKeyword {
			m.words = append(m.words, regexp.MustCompile(`\b`+regexp.QuoteMeta(kw)+`\b`))
		} else {
			m.phrases = append(m.phrases, kw)
		}
	}
	return m
}

func (m matcher) match(item Item) bool {
	text := searchable(item)
	for _, re := range m.words {
		if re.MatchString(text) {
			return true
		}
	}
	for _, p := range m.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func searchable(item Item) string {
	return strings.ToLower(item.Title + " " + item.Description + " " + strings.Join(item.Tags, " "))
}

type tagRule struct {
	tag      string
	keywords []string
}

var tagRules = []tagRule{
	{"Vulnérabilité", []string{"vulnerability", "vulnérabilité", "cve-", "exploit", "flaw", "faille"}},
	{"Sécurité", []string{"security", "sécurité", "secure", "sécurisé", "protection"}},
	{"Entreprise", []string{"enterprise", "entreprise", "corporate", "business", "organization"}},
	{"Infrastructure", []string{"infrastructure", "server", "serveur", "network", "réseau"}},
	{"Innovation", []string{"innovation", "new", "launch", "nouveau", "announces", "annonce"}},
	{"Failles", []string{"breach", "hack", "attack", "attaque", "compromis", "pirat"}},
	{"Solutions", []string{"solution", "tool", "outil", "product", "produit", "platform"}},
	{"Documentation", []string{"guide", "tutorial", "documentation", "how-to", "best practice"}},
	{"Gouvernement", []string{"government", "gouvernement", "regulation", "réglementation", "cnil", "anssi", "nist"}},
	{"Cloud", []string{"cloud", "aws", "azure", "gcp", "saas", "iaas"}},
	{"2AF", []string{"2fa", "a2f", "two-factor", "deux facteurs"}},
	{"Biométrie", []string{"biometric", "biométrie", "fingerprint", "facial", "empreinte"}},
	{"Statistiques", []string{"report", "rapport", "survey", "étude", "market", "marché", "statistics"}},
}

// AutoTag returns the item's own tags followed by every rule tag whose
// keywords appear in the title or description. The result is never empty
// (topic is the fallback), has no case-insensitive duplicates and holds at
// most six tags.
func AutoTag(item Item, topic string) []string {
	tags := append([]string(nil), item.Tags...)
	text := strings.ToLower(item.Title + " " + item.Description)
	for _, rule := range tagRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		tags = []string{topic}
	}

	seen := make(map[string]bool, len(tags))
	unique := tags[:0]
	for _, t := range tags {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
		if len(unique) == maxTags {
			break
		}
	}
	return unique
}
