package codec

import (
	"bytes"
	"io"
	"testing"
)

var benchCharacter = Message{
	Type:            TypeCharacter,
	CharName:        "benchmark-hero",
	CharFlags:       0xC8,
	CharAttack:      20,
	CharDefense:     10,
	CharRegen:       10,
	CharHealth:      20,
	CharGold:        150,
	CharCurrentRoom: 3,
	CharDescription: "A seasoned adventurer with a dented shield.",
}

func BenchmarkEncodeCharacter(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if err := Encode(benchCharacter, io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeCharacter(b *testing.B) {
	var buf bytes.Buffer
	if err := Encode(benchCharacter, &buf); err != nil {
		b.Fatal(err)
	}
	frame := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(bytes.NewReader(frame)); err != nil {
			b.Fatal(err)
		}
	}
}
