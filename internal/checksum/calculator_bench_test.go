package checksum

import (
	"strings"
	"testing"

	"github.com/vvka-141/clientlibs/pkg/clientlibs"
)

var benchScript = []byte(strings.Repeat("/* @clientlib site */\n// helper\nvar url = \"http://example.com\"; function f(a) { return a * 2; }\r\n", 200))

var benchStyles = []byte(strings.Repeat("/* @clientlib site */\n.nav > li { margin: 0 auto; color: #333; }\r\n", 200))

func BenchmarkCalculateRaw(b *testing.B) {
	calculator := New()
	b.SetBytes(int64(len(benchScript)))

	for i := 0; i < b.N; i++ {
		calculator.CalculateRaw(benchScript)
	}
}

func BenchmarkCalculateNormalized_Script(b *testing.B) {
	calculator := New()
	b.SetBytes(int64(len(benchScript)))

	for i := 0; i < b.N; i++ {
		calculator.CalculateNormalized(clientlibs.AssetScript, benchScript)
	}
}

func BenchmarkCalculateNormalized_Style(b *testing.B) {
	calculator := New()
	b.SetBytes(int64(len(benchStyles)))

	for i := 0; i < b.N; i++ {
		calculator.CalculateNormalized(clientlibs.AssetStyle, benchStyles)
	}
}
