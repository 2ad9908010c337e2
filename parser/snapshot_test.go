package parser

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/wudi/php-parser/ast"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

// Whole-file AST dumps pinned as snapshots; any change to node shapes or
// span computation shows up as a snapshot diff.
func TestSnapshot_ASTDumps(t *testing.T) {
	fixtures := map[string]string{
		"hello": `<?php echo "Hello, world!";`,
		"fib": `<?php
function fib($n) {
    if ($n < 2) {
        return $n;
    }
    return fib($n - 1) + fib($n - 2);
}`,
		"classish": `<?php
namespace App;

use App\Contracts\Renderable;

#[Entity]
final class Widget extends Base implements Renderable {
    use Sortable, Comparable {
        Sortable::weight insteadof Comparable;
        Comparable::weight as private rawWeight;
    }

    public const VERSION = 1;
    private readonly string $name;

    public function __construct(string $name) {
        $this->name = $name;
    }

    public function render(): string {
        return match(true) {
            default => $this->name,
        };
    }
}`,
		"enum": `<?php
enum Suit: string {
    case Hearts = 'H';
    case Spades = 'S';

    public function isRed(): bool {
        return $this === self::Hearts;
    }
}`,
	}

	for name, source := range fixtures {
		t.Run(name, func(t *testing.T) {
			program, err := ParseString(source)
			require.NoError(t, err)
			out, err := ast.ToJSON(program)
			require.NoError(t, err)
			snaps.MatchSnapshot(t, string(out))
		})
	}
}
