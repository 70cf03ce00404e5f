/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ast

// Visitor has one method per concrete node. Accept dispatches to it; the
// visitor decides whether to descend into children.
type Visitor interface {
	VisitInteger(n *IntegerNode) error
	VisitDecimal(n *DecimalNode) error
	VisitString(n *StringNode) error
	VisitBoolean(n *BooleanNode) error
	VisitNull(n *NullNode) error
	VisitIdentifier(n *IdentifierNode) error
	VisitDot(n *DotNode) error
	VisitIndex(n *IndexNode) error
	VisitStar(n *StarNode) error
	VisitFunction(n *FunctionNode) error
	VisitWindowFunction(n *WindowFunctionNode) error
	VisitWindowSpec(n *WindowSpecNode) error
	VisitFrame(n *FrameNode) error
	VisitBinary(n *BinaryNode) error
	VisitUnary(n *UnaryNode) error
	VisitIsNull(n *IsNullNode) error
	VisitIn(n *InNode) error
	VisitBetween(n *BetweenNode) error
	VisitContains(n *ContainsNode) error
	VisitCase(n *CaseNode) error
	VisitSubquery(n *SubqueryNode) error
	VisitField(n *FieldNode) error
	VisitSelect(n *SelectNode) error
	VisitWhere(n *WhereNode) error
	VisitGroupBy(n *GroupByNode) error
	VisitHaving(n *HavingNode) error
	VisitOrderBy(n *OrderByNode) error
	VisitOrderItem(n *OrderItemNode) error
	VisitSkip(n *SkipNode) error
	VisitTake(n *TakeNode) error
	VisitQuery(n *QueryNode) error
	VisitSetOperator(n *SetOperatorNode) error
	VisitCte(n *CteNode) error
	VisitCteExpression(n *CteExpressionNode) error
	VisitDesc(n *DescNode) error
	VisitCouple(n *CoupleNode) error
	VisitEmbeddedSchema(n *EmbeddedSchemaNode) error
	VisitStatements(n *StatementsNode) error
	VisitSchemaFrom(n *SchemaFromNode) error
	VisitReferenceFrom(n *ReferenceFromNode) error
	VisitSubqueryFrom(n *SubqueryFromNode) error
	VisitPropertyFrom(n *PropertyFromNode) error
	VisitAliasMethodFrom(n *AliasMethodFromNode) error
	VisitJoinFrom(n *JoinFromNode) error
	VisitApplyFrom(n *ApplyFromNode) error
	VisitPivotFrom(n *PivotFromNode) error
	VisitPivot(n *PivotNode) error
}

// NopVisitor implements every Visitor method as a no-op. Embed it to handle
// only the nodes of interest.
type NopVisitor struct{}

func (NopVisitor) VisitInteger(*IntegerNode) error { return nil }
func (NopVisitor) VisitDecimal(*DecimalNode) error { return nil }
func (NopVisitor) VisitString(*StringNode) error { return nil }
func (NopVisitor) VisitBoolean(*BooleanNode) error { return nil }
func (NopVisitor) VisitNull(*NullNode) error { return nil }
func (NopVisitor) VisitIdentifier(*IdentifierNode) error { return nil }
func (NopVisitor) VisitDot(*DotNode) error { return nil }
func (NopVisitor) VisitIndex(*IndexNode) error { return nil }
func (NopVisitor) VisitStar(*StarNode) error { return nil }
func (NopVisitor) VisitFunction(*FunctionNode) error { return nil }
func (NopVisitor) VisitWindowFunction(*WindowFunctionNode) error { return nil }
func (NopVisitor) VisitWindowSpec(*WindowSpecNode) error { return nil }
func (NopVisitor) VisitFrame(*FrameNode) error { return nil }
func (NopVisitor) VisitBinary(*BinaryNode) error { return nil }
func (NopVisitor) VisitUnary(*UnaryNode) error { return nil }
func (NopVisitor) VisitIsNull(*IsNullNode) error { return nil }
func (NopVisitor) VisitIn(*InNode) error { return nil }
func (NopVisitor) VisitBetween(*BetweenNode) error { return nil }
func (NopVisitor) VisitContains(*ContainsNode) error { return nil }
func (NopVisitor) VisitCase(*CaseNode) error { return nil }
func (NopVisitor) VisitSubquery(*SubqueryNode) error { return nil }
func (NopVisitor) VisitField(*FieldNode) error { return nil }
func (NopVisitor) VisitSelect(*SelectNode) error { return nil }
func (NopVisitor) VisitWhere(*WhereNode) error { return nil }
func (NopVisitor) VisitGroupBy(*GroupByNode) error { return nil }
func (NopVisitor) VisitHaving(*HavingNode) error { return nil }
func (NopVisitor) VisitOrderBy(*OrderByNode) error { return nil }
func (NopVisitor) VisitOrderItem(*OrderItemNode) error { return nil }
func (NopVisitor) VisitSkip(*SkipNode) error { return nil }
func (NopVisitor) VisitTake(*TakeNode) error { return nil }
func (NopVisitor) VisitQuery(*QueryNode) error { return nil }
func (NopVisitor) VisitSetOperator(*SetOperatorNode) error { return nil }
func (NopVisitor) VisitCte(*CteNode) error { return nil }
func (NopVisitor) VisitCteExpression(*CteExpressionNode) error { return nil }
func (NopVisitor) VisitDesc(*DescNode) error { return nil }
func (NopVisitor) VisitCouple(*CoupleNode) error { return nil }
func (NopVisitor) VisitEmbeddedSchema(*EmbeddedSchemaNode) error { return nil }
func (NopVisitor) VisitStatements(*StatementsNode) error { return nil }
func (NopVisitor) VisitSchemaFrom(*SchemaFromNode) error { return nil }
func (NopVisitor) VisitReferenceFrom(*ReferenceFromNode) error { return nil }
func (NopVisitor) VisitSubqueryFrom(*SubqueryFromNode) error { return nil }
func (NopVisitor) VisitPropertyFrom(*PropertyFromNode) error { return nil }
func (NopVisitor) VisitAliasMethodFrom(*AliasMethodFromNode) error { return nil }
func (NopVisitor) VisitJoinFrom(*JoinFromNode) error { return nil }
func (NopVisitor) VisitApplyFrom(*ApplyFromNode) error { return nil }
func (NopVisitor) VisitPivotFrom(*PivotFromNode) error { return nil }
func (NopVisitor) VisitPivot(*PivotNode) error { return nil }

var _ Visitor = NopVisitor{}
