/*
Package command implements the executable command graph.

A command line is executed as a tree of nodes:

  - Literal: a fixed word.
  - Group / Root: named dispatch tables resolved by abbreviation (FilterList).
  - Function: a native implementation with an explicitly declared parameter
    shape; binds arguments, curries when under-supplied and negotiates the
    result type.
  - Applied: a partial application of any node.

Arguments are lazy (EmptyArgs, StaticArgs, RangeArgs, MergeArgs): an argument
is only evaluated when a node asks for it, and it is evaluated again on every
access.
*/
package command
