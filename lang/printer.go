package lang

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"oocesk/cesk"
)

// PrintClass writes a concrete-syntax-like rendering of c to w: its name,
// parent, field and method tables, and each method's statement chain. It is
// a debugging aid, not a round-trippable serializer — grounded on the
// teacher's instruction-listing style (walking a decoded program and
// printing one entry per line) applied to a statement/expression tree
// instead of a flat bytecode array.
func PrintClass(w io.Writer, c *cesk.ClassDef) {
	parent := c.Parent
	if !c.HasParent {
		parent = "<none>"
	}
	fmt.Fprintf(w, "class %s extends %s {\n", c.Name, parent)

	for _, name := range sortedKeys(c.Fields) {
		fmt.Fprintf(w, "  var %s;\n", name)
	}
	for _, name := range sortedKeys(c.Methods) {
		m := c.Methods[name]
		fmt.Fprintf(w, "  def %s(%s) {\n", m.Name, strings.Join(m.Params, ", "))
		printStmtChain(w, m.Entry, "    ")
		fmt.Fprintln(w, "  }")
	}
	fmt.Fprintln(w, "}")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printStmtChain walks a statement's Next() chain, printing one line per
// statement. It does not follow goto/if targets — those are printed as
// jumps to a label name, not inlined.
func printStmtChain(w io.Writer, s cesk.Stmt, indent string) {
	seen := map[cesk.Stmt]bool{}
	for s != nil && !seen[s] {
		seen[s] = true
		fmt.Fprintf(w, "%s%s\n", indent, describeStmt(s))
		s = s.Next()
	}
}

func describeStmt(s cesk.Stmt) string {
	switch v := s.(type) {
	case *cesk.SkipStmt:
		return "skip;"
	case *cesk.LabelStmt:
		return fmt.Sprintf("label %s:", v.Name)
	case *cesk.GotoStmt:
		return fmt.Sprintf("goto %s;", v.Label)
	case *cesk.IfStmt:
		return fmt.Sprintf("if %s goto %s;", describeExpr(v.Cond), v.Label)
	case *cesk.AssignAExpStmt:
		return fmt.Sprintf("%s := %s;", v.Reg, describeExpr(v.Rhs))
	case *cesk.FieldAssignStmt:
		return fmt.Sprintf("%s.%s := %s;", describeExpr(v.Obj), v.Field, describeExpr(v.Rhs))
	case *cesk.NewStmt:
		return fmt.Sprintf("%s := new %s;", v.Reg, v.Class)
	case *cesk.InvokeStmt:
		return fmt.Sprintf("%s := invoke %s.%s(%s);", v.Reg, describeExpr(v.Obj), v.Method, describeExprList(v.Args))
	case *cesk.InvokeSuperStmt:
		return fmt.Sprintf("%s := invoke super.%s(%s);", v.Reg, v.Method, describeExprList(v.Args))
	case *cesk.ReturnStmt:
		return fmt.Sprintf("return %s;", describeExpr(v.Result))
	case *cesk.PushHandlerStmt:
		return fmt.Sprintf("pushHandler %s %s;", v.Class, v.Label)
	case *cesk.PopHandlerStmt:
		return "popHandler;"
	case *cesk.ThrowStmt:
		return fmt.Sprintf("throw %s;", describeExpr(v.Exc))
	case *cesk.MoveExceptionStmt:
		return fmt.Sprintf("moveException %s;", v.Reg)
	case *cesk.PrintStmt:
		return fmt.Sprintf("print(%s);", describeExprList(v.Args))
	default:
		return fmt.Sprintf("<unknown statement %T>", s)
	}
}

func describeExprList(exprs []cesk.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = describeExpr(e)
	}
	return strings.Join(parts, ", ")
}

func describeExpr(e cesk.Expr) string {
	switch v := e.(type) {
	case cesk.ThisExpr:
		return "this"
	case cesk.RegisterExpr:
		return v.Name
	case cesk.IntExpr:
		return fmt.Sprintf("%d", v.Value)
	case cesk.BoolExpr:
		return fmt.Sprintf("%t", v.Value)
	case cesk.NullExpr:
		return "null"
	case cesk.VoidExpr:
		return "void"
	case cesk.FieldExpr:
		return fmt.Sprintf("%s.%s", describeExpr(v.Obj), v.Field)
	case cesk.InstanceOfExpr:
		return fmt.Sprintf("instanceof(%s, %s)", describeExpr(v.Obj), v.Class)
	case cesk.AtomicOpExpr:
		return fmt.Sprintf("%s(%s)", v.Op, describeExprList(v.Args))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}
