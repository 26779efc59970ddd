// Package stack provides handlers for whole-stack operations.
//
// stack.flattenVisible creates, at the top of the stack, one fill layer
// named "Stack layer - <Channel>" for each configured channel that carries
// visible content. Normal is never flattened. The channels can be
// overridden per dispatch with the "channels" argument of a binding.
package stack
