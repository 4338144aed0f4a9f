package nistitl

import (
	_ "embed"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed internal/data/aliases.yaml
var embeddedAliases []byte

// DataAlias is the pseudo-alias marking a record's binary trailer tag
// (e.g. tag 999 of a type-10 record).
const DataAlias = "DATA"

var (
	aliasMu    sync.RWMutex
	aliasTable map[int]map[int]string
)

func init() {
	aliasTable = make(map[int]map[int]string)
	if err := yaml.Unmarshal(embeddedAliases, &aliasTable); err != nil {
		panic("nistitl: embedded alias table failed to parse: " + err.Error())
	}
}

// MergeAliasOverrides extends (or overrides) the alias table from
// additional YAML, shaped the same as the embedded table: a map of record
// type to a map of tag to mnemonic. It is the caller's responsibility to
// call this before building or parsing messages that depend on it — the
// table is otherwise treated as process-wide immutable configuration data.
func MergeAliasOverrides(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	overrides := make(map[int]map[int]string)
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return newErr(BadContent, "alias overrides: %s", err)
	}
	aliasMu.Lock()
	defer aliasMu.Unlock()
	for recordType, tags := range overrides {
		if aliasTable[recordType] == nil {
			aliasTable[recordType] = make(map[int]string)
		}
		for tag, alias := range tags {
			aliasTable[recordType][tag] = alias
		}
	}
	return nil
}

// AliasForTag looks up the static mnemonic for record type/tag, if any.
func AliasForTag(recordType, tag int) (string, bool) {
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	tags, ok := aliasTable[recordType]
	if !ok {
		return "", false
	}
	alias, ok := tags[tag]
	return alias, ok
}

// TagForAlias looks up the tag number for a record type/mnemonic.
func TagForAlias(recordType int, alias string) (int, bool) {
	aliasMu.RLock()
	defer aliasMu.RUnlock()
	tags, ok := aliasTable[recordType]
	if !ok {
		return 0, false
	}
	for tag, a := range tags {
		if a == alias {
			return tag, true
		}
	}
	return 0, false
}

// TagForData returns the tag marked DATA for a record type, if the
// standard defines a binary trailer for it.
func TagForData(recordType int) (int, bool) {
	return TagForAlias(recordType, DataAlias)
}
