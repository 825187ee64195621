package bolt

import (
	"bytes"
	"encoding/json"

	"go.etcd.io/bbolt"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

const keySep = 0x00

// compositeKey une partes con \x00; los UUID nunca contienen ese byte.
func compositeKey(parts ...string) []byte {
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(keySep)
		}
		b.WriteString(p)
	}
	return b.Bytes()
}

func prefixKey(id string) []byte {
	return append([]byte(id), keySep)
}

// lastPart devuelve lo que sigue al último separador.
func lastPart(key []byte) string {
	i := bytes.LastIndexByte(key, keySep)
	return string(key[i+1:])
}

func getJSON(b *bbolt.Bucket, key []byte, dst any) (bool, error) {
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, domain.Storage("decode "+string(key), err)
	}
	return true, nil
}

func decode(data []byte, dst any, what string) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return domain.Storage("decode "+what, err)
	}
	return nil
}

func putJSON(b *bbolt.Bucket, key []byte, v any, op string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.Storage(op, err)
	}
	if err := b.Put(key, data); err != nil {
		return domain.Storage(op, err)
	}
	return nil
}

// deletePrefix borra todas las claves con ese prefijo y devuelve la última parte de cada una.
func deletePrefix(b *bbolt.Bucket, prefix []byte) ([]string, error) {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return nil, domain.Storage("delete key", err)
		}
		out = append(out, lastPart(k))
	}
	return out, nil
}

// countKeys cuenta recorriendo el bucket; Stats no refleja escrituras aún no confirmadas.
func countKeys(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}
