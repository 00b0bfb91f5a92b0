// Package params declares and resolves named task parameters.
//
// A definition-phase driver stages parameters on a Declaration, then drains
// it into a Spec as the next task is created. At first invocation a Resolver
// turns the Spec into Args: aliases are consulted newest first, then the
// canonical name, then the declared default. Missing required values are
// either prompted for or collected into a single MissingParamsError.
package params
