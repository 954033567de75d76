package ast

import "github.com/chesslang/chesslang/internal/position"

// Expression is the host-language expression tagged union (§3, §4.2).
type Expression interface{ isExpression() }

// LiteralExpr wraps a NUMBER, STRING, BOOLEAN, or NULL literal. Value is one
// of float64, string, bool, or nil.
type LiteralExpr struct {
	Value any
}

// IdentifierExpr names a value in the evaluation environment (§4.5).
type IdentifierExpr struct {
	Name string
}

// MemberExpr is Object.Property (Property may be a reserved keyword used as
// a property name, per the grammar's postfix production).
type MemberExpr struct {
	Object   Expression
	Property string
}

// IndexExpr is Object[Index].
type IndexExpr struct {
	Object Expression
	Index  Expression
}

// CallExpr is Callee(Args...).
type CallExpr struct {
	Callee Expression
	Args   []Expression
}

// BinaryExpr is L Op R for arithmetic/comparison/logical operators.
type BinaryExpr struct {
	Op   string
	L, R Expression
}

// UnaryExpr is Op Operand (e.g. "-", "!", "not").
type UnaryExpr struct {
	Op      string
	Operand Expression
}

// ArrayExpr is an array literal.
type ArrayExpr struct {
	Elements []Expression
}

// ObjectField is one key: value pair of an object literal.
type ObjectField struct {
	Key   string
	Value Expression
}

// ObjectExpr is an object literal; Fields preserves source order.
type ObjectExpr struct {
	Fields []ObjectField
}

// SquareExpr is a bare square literal (e.g. e4) used as a value.
type SquareExpr struct {
	Square position.Position
}

func (LiteralExpr) isExpression()    {}
func (IdentifierExpr) isExpression() {}
func (MemberExpr) isExpression()     {}
func (IndexExpr) isExpression()      {}
func (CallExpr) isExpression()       {}
func (BinaryExpr) isExpression()     {}
func (UnaryExpr) isExpression()      {}
func (ArrayExpr) isExpression()      {}
func (ObjectExpr) isExpression()     {}
func (SquareExpr) isExpression()     {}
