package codegen_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/leonardinius/goexpr/internal/codegen"
	"github.com/leonardinius/goexpr/internal/exprerrors"
	"github.com/leonardinius/goexpr/internal/parser"
	"github.com/leonardinius/goexpr/internal/scanner"
	"github.com/leonardinius/goexpr/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name string
		in   string
		asm  []string
	}{
		{name: `literal`, in: `42;`, asm: []string{"mov eax, 42", "ret"}},
		{name: `decimal literal verbatim`, in: `2.50`, asm: []string{"mov eax, 2.50", "ret"}},
		{name: `add`, in: `1 + 2`, asm: []string{"mov eax, 1", "push eax", "mov eax, 2", "pop ebx", "add eax, ebx", "ret"}},
		{name: `sub`, in: `5 - 3`, asm: []string{"mov eax, 5", "push eax", "mov eax, 3", "pop ebx", "sub eax, ebx", "ret"}},
		{name: `mul`, in: `6 * 7`, asm: []string{"mov eax, 6", "push eax", "mov eax, 7", "pop ebx", "imul eax, ebx", "ret"}},
		{name: `div`, in: `8 / 2`, asm: []string{"mov eax, 8", "push eax", "mov eax, 2", "pop ebx", "cdq", "idiv ebx", "ret"}},
		{
			name: `worked example`,
			in:   `3 + 4 * (2 - 1);`,
			asm: []string{
				"mov eax, 3",
				"push eax",
				"mov eax, 4",
				"pop ebx",
				"add eax, ebx",
				"push eax",
				"mov eax, 2",
				"push eax",
				"mov eax, 1",
				"pop ebx",
				"sub eax, ebx",
				"pop ebx",
				"imul eax, ebx",
				"ret",
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			asm, err := codegen.NewEmitter().Emit(parse(t, tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.asm, asm)
		})
	}
}

func TestEmitStackDiscipline(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`1`,
		`1 + 2 - 3 * 4 / 5`,
		`(1 + (2 - (3 * (4 / 5))))`,
		`((1 + 2) * (3 - 4)) / ((5 + 6) * 7)`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			expr := parse(t, in)
			asm, err := codegen.NewEmitter().Emit(expr)
			require.NoError(t, err)

			rets := 0
			pushes, pops, depth := 0, 0, 0
			for _, l := range asm {
				switch {
				case l == "ret":
					rets++
				case strings.HasPrefix(l, "push "):
					pushes++
					depth++
				case strings.HasPrefix(l, "pop "):
					pops++
					depth--
					assert.GreaterOrEqual(t, depth, 0, "pop without matching push")
				}
			}

			assert.Equal(t, 1, rets)
			assert.Equal(t, "ret", asm[len(asm)-1])
			assert.Equal(t, countBinary(expr), pushes)
			assert.Equal(t, pushes, pops)
			assert.Zero(t, depth)
		})
	}
}

func TestEmitRunsOnRegisterMachine(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		in       string
		expected int
	}{
		{`42`, 42},
		{`2 + 3 * 4`, 20},
		{`2 + (3 * 4)`, 14},
		{`(1 + 2) * (3 + 4) * 2`, 42},
		// After pop ebx the left operand sits in ebx and the right one in eax,
		// so sub and idiv combine right with left.
		{`10 - 4`, -6},
		{`4 - 10`, 6},
		{`8 / 2`, 0},
		{`2 / 8`, 4},
		{`(10 - 4) * 2`, -12},
	}

	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			asm, err := codegen.NewEmitter().Emit(parse(t, tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, run(t, asm))
		})
	}
}

func TestEmitUnknownOperator(t *testing.T) {
	t.Parallel()

	op := token.NewTokenHeap(token.OPERATOR, "%", nil, 1, 2)
	expr := &parser.ExprBinary{
		Left:     &parser.ExprLiteral{Value: 1},
		Operator: op,
		Right:    &parser.ExprLiteral{Value: 2},
	}

	asm, err := codegen.NewEmitter().Emit(expr)
	assert.Nil(t, asm)
	assert.EqualError(t, err, "[line 1] codegen error at '%' (offset 2): unknown operator. supported: * + - /")
	assert.ErrorIs(t, err, exprerrors.ErrCodegenUnknownOperator)
	assert.Equal(t, exprerrors.KindCodegen, exprerrors.Kind(err))
}

func TestEmitIsRepeatable(t *testing.T) {
	t.Parallel()

	e := codegen.NewEmitter()
	expr := parse(t, `3 + 4 * (2 - 1);`)

	first, err := e.Emit(expr)
	require.NoError(t, err)
	second, err := e.Emit(expr)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmitIndentAndFormat(t *testing.T) {
	t.Parallel()

	e := codegen.NewEmitter(codegen.WithIndent("    "))
	asm, err := e.Emit(parse(t, `1 + 2`))
	require.NoError(t, err)

	out := new(strings.Builder)
	require.NoError(t, e.Format(out, asm))
	assert.Equal(t, "    mov eax, 1\n    push eax\n    mov eax, 2\n    pop ebx\n    add eax, ebx\n    ret\n", out.String())
}

func TestSupportedOperators(t *testing.T) {
	assert.Equal(t, []string{"*", "+", "-", "/"}, codegen.SupportedOperators())
}

func parse(t *testing.T, input string) parser.Expr {
	t.Helper()

	tokens, err := scanner.NewScanner(input).Scan()
	require.NoError(t, err)

	expr, err := parser.NewParser(tokens).Parse()
	require.NoError(t, err)
	return expr
}

func countBinary(expr parser.Expr) int {
	if b, ok := expr.(*parser.ExprBinary); ok {
		return 1 + countBinary(b.Left) + countBinary(b.Right)
	}
	return 0
}

// run executes an integer listing on a two register machine with a stack.
func run(t *testing.T, asm []string) int {
	t.Helper()

	regs := map[string]int{}
	var stack []int
	for _, l := range asm {
		op, args, _ := strings.Cut(l, " ")
		operands := strings.Split(args, ", ")
		switch op {
		case "mov":
			v, err := strconv.Atoi(operands[1])
			require.NoError(t, err)
			regs[operands[0]] = v
		case "push":
			stack = append(stack, regs[operands[0]])
		case "pop":
			require.NotEmpty(t, stack)
			regs[operands[0]] = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case "add":
			regs[operands[0]] += regs[operands[1]]
		case "sub":
			regs[operands[0]] -= regs[operands[1]]
		case "imul":
			regs[operands[0]] *= regs[operands[1]]
		case "cdq":
			regs["edx"] = 0
			if regs["eax"] < 0 {
				regs["edx"] = -1
			}
		case "idiv":
			divisor := regs[operands[0]]
			require.NotZero(t, divisor, "division by zero")
			regs["eax"], regs["edx"] = regs["eax"]/divisor, regs["eax"]%divisor
		case "ret":
			require.Empty(t, stack)
			return regs["eax"]
		default:
			t.Fatalf("unsupported instruction %q", l)
		}
	}
	t.Fatal("listing has no ret")
	return 0
}
