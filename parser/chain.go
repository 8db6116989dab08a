package parser

import "fmt"

// Chain feeds the output of each stage into the next.
//
// Stages receive text, so a stage that needs a parsed value wraps the parser
// producing it in a Custom stage:
//
//	sum := parser.Custom(func(text string) (any, error) {
//	    ints, err := parser.As[[]int](parser.NewIntList(0), text)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return lo.Sum(ints), nil
//	})
//	total := parser.NewChain(parser.NewReplace("x", " "), sum)
type Chain struct {
	stages []Parser
}

// NewChain creates a chain of stages. An empty chain returns its input
// unchanged.
func NewChain(stages ...Parser) *Chain {
	c := &Chain{stages: make([]Parser, len(stages))}
	for i, p := range stages {
		c.stages[i] = orText(p)
	}
	return c
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Parse runs the stages in order. Every stage but the last must produce a
// string; the first failure is returned as is.
func (c *Chain) Parse(text string) (any, error) {
	var v any = text
	for i, p := range c.stages {
		in, ok := v.(string)
		if !ok {
			return nil, NewError(fmt.Sprintf("chain[%d]", i), text,
				fmt.Errorf("%w: stage %d returned %T", ErrChainInput, i-1, v))
		}
		out, err := p.Parse(in)
		if err != nil {
			return nil, err
		}
		v = out
	}
	return v, nil
}
