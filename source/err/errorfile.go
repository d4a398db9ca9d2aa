package err

import (
	"fmt"
)

// A map from error identifiers to the kind of the error and to functions that supply the
// corresponding error messages and explanations.
//
// Errors in the map are in alphabetical order of their identifers.
//
// Major categories are block, eval, lex, parse, reg, type, and var.
//
// Two otherwise identical errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	// TEMPLATE
	"": {
		Kind: UNKNOWN_ERROR,
		Message: func(args ...any) string {
			return ""
		},
		Explanation: func(args ...any) string {
			return ""
		},
	},

	"block/end": {
		Kind: BLOCK_ERROR,
		Message: func(args ...any) string {
			return "no block has been started"
		},
		Explanation: func(args ...any) string {
			return "The environment was asked to end a block when the only block open was the root " +
				"block, which lasts as long as the environment does. This is a bug in the host program."
		},
	},

	"eval/convert": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("can't convert %v to %v", emphStr(args[0]), emph(args[1]))
		},
		Explanation: func(args ...any) string {
			return "Conversions from strings to numbers are inserted where they make a function call " +
				"type-check, but whether the string actually contains a number can only be known when " +
				"the script runs."
		},
	},

	"eval/dangling": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("dangling reference to variable %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A reference made with '&&' is only good while the block that defines the variable " +
				"is being evaluated. This reference has outlived its block, for example by being returned " +
				"from it."
		},
	},

	"eval/div": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return "division by zero"
		},
		Explanation: func(args ...any) string {
			return "Integer division by zero has no answer, so 'div' refuses to do it."
		},
	},

	"eval/index": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("index %v is out of range for an array of size %v", args[0], args[1])
		},
		Explanation: func(args ...any) string {
			return "Arrays are indexed from 0, so the largest valid index is one less than the size."
		},
	},

	"eval/native": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("function %v failed: %v", emph(args[0]), args[1])
		},
		Explanation: func(args ...any) string {
			return "A function supplied by the host returned an error. The error is passed on as it was given."
		},
	},

	"eval/sql": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("database error in %v: %v", emph(args[0]), args[1])
		},
		Explanation: func(args ...any) string {
			return "The database driver reported an error. Check the driver name, the connection " +
				"string, and the SQL."
		},
	},

	"eval/type": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable of type %v can't hold a value of type %v", emph(args[0]), emph(args[1]))
		},
		Explanation: func(args ...any) string {
			return "This should have been caught when the script was validated. It can happen if the " +
				"host program assigns to a variable directly, or if a native function lies about its " +
				"return type."
		},
	},

	"eval/unvalidated": {
		Kind: RUNTIME_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("statement %v was evaluated before it was validated", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "Every statement is bound to a function or a variable while it is parsed. An " +
				"unbound statement can only be reached by building a tree by hand."
		},
	},

	"lex/eof": {
		Kind: TOKENIZATION_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unexpected end of input, expected string literal to be closed with %v", args[0])
		},
		Explanation: func(args ...any) string {
			return "A string literal starts with a quote mark and runs until the next matching quote " +
				"mark that isn't escaped with a backslash. This one never ends."
		},
	},

	"lex/escape": {
		Kind: TOKENIZATION_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unknown escape sequence %v", emph("\\"+string(args[0].(rune))))
		},
		Explanation: func(args ...any) string {
			return "The escape sequences allowed in string literals are '\\n', '\\\\', '\\b', '\\r', " +
				"'\\'' and '\\\"'."
		},
	},

	"parse/argument": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unexpected argument %v, expected a terminator or a pipe", args[0])
		},
		Explanation: func(args ...any) string {
			return "Only statements can have arguments. A literal used as a statement must be followed " +
				"by '.' or ','."
		},
	},

	"parse/end": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unexpected %v outside of a block", emph("END"))
		},
		Explanation: func(args ...any) string {
			return "'END' closes a block opened with 'BLOCK' or 'ACTION'. There is no such block open here."
		},
	},

	"parse/eof/a": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unexpected end of input, expected a statement after %v", emph("IN"))
		},
		Explanation: func(args ...any) string {
			return "'IN' inlines the statement that follows it as a single argument, so something must follow it."
		},
	},

	"parse/eof/b": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return "unexpected end of input, expected an argument, a terminator, or a pipe"
		},
		Explanation: func(args ...any) string {
			return "Every statement has to end with '.', or with ',' and another statement to pipe into."
		},
	},

	"parse/eof/c": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return "unexpected end of input, expected a statement to pipe into"
		},
		Explanation: func(args ...any) string {
			return "A ',' passes the statement to its left to the statement on its right as its first " +
				"argument, so there has to be a statement on its right."
		},
	},

	"parse/eof/block": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unexpected end of input, expected %v to close the block", emph("END"))
		},
		Explanation: func(args ...any) string {
			return "A block opened with 'BLOCK' or 'ACTION' runs until the matching 'END'."
		},
	},

	"parse/in": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v can only be used as an argument", emph("IN"))
		},
		Explanation: func(args ...any) string {
			return "'IN' makes the statement after it into an argument of the statement before it, " +
				"e.g. 'print IN string 25 . .'. At the start of a statement there is nothing for it to be " +
				"an argument of."
		},
	},

	"parse/keyword": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unknown keyword %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "Words made entirely of capital letters are keywords. The keywords understood are " +
				"'IN', 'BLOCK', 'ACTION' and 'END'."
		},
	},

	"parse/number/format": {
		Kind: NUMBER_LITERAL_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("number %v is not of correct format", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A word starting with a digit is a number. It may end in 'i' to make it an int or " +
				"'f' to make it a float, and without a suffix it must be all digits."
		},
	},

	"parse/number/suffix": {
		Kind: NUMBER_LITERAL_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("unknown number type %v", emph(string(args[0].(rune))))
		},
		Explanation: func(args ...any) string {
			return "The suffixes a number may have are 'i' for int and 'f' for float."
		},
	},

	"parse/pipe/literal": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return "unexpected literal, expected a statement to pipe into"
		},
		Explanation: func(args ...any) string {
			return "The right-hand side of ',' receives the left-hand side as its first argument, so it " +
				"has to be a statement rather than a literal."
		},
	},

	"parse/pipe/number": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return "cannot pipe into a number"
		},
		Explanation: func(args ...any) string {
			return "The right-hand side of ',' receives the left-hand side as its first argument, so it " +
				"has to be a statement rather than a number."
		},
	},

	"parse/pipe/string": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return "cannot pipe into a string"
		},
		Explanation: func(args ...any) string {
			return "The right-hand side of ',' receives the left-hand side as its first argument, so it " +
				"has to be a statement rather than a string literal."
		},
	},

	"parse/unexpected": {
		Kind: SYNTAX_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("expected statement, unexpected %v", args[0])
		},
		Explanation: func(args ...any) string {
			return "A statement starts with a word or a literal, or with one of the keywords 'IN', " +
				"'BLOCK' and 'ACTION'."
		},
	},

	"parse/validated": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("tried to validate statement %v which is already validated", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A statement is bound to its function or variable exactly once."
		},
	},

	"reg/signature": {
		Kind: REGISTRATION_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("a function with signature %v is already registered", emphStr(args[0]))
		},
		Explanation: func(args ...any) string {
			return "Overloads of a function must differ in their parameter types."
		},
	},

	"reg/type/name": {
		Kind: REGISTRATION_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v is not a valid name for a new type", emphStr(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A type name must be non-empty, must not contain spaces or '!', and must not " +
				"already be in use."
		},
	},

	"reg/type/twice": {
		Kind: REGISTRATION_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("type is already registered as %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "Each type has exactly one name in a given registry."
		},
	},

	"type/arity/assign": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return "variable assignment must have one value"
		},
		Explanation: func(args ...any) string {
			return "'x= <value>' assigns one value to 'x'."
		},
	},

	"type/arity/define/a": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable definition cannot have arguments, expected %v", emph("DEFINE:<name>:<type>"))
		},
		Explanation: func(args ...any) string {
			return "'DEFINE:<name>:<type>' declares a variable with no initial value. To declare one " +
				"with a value, use 'DEFINE:<name> <value>' and the type will be that of the value."
		},
	},

	"type/arity/define/b": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable definition must have 1 argument, expected %v", emph("DEFINE:<name> <value>"))
		},
		Explanation: func(args ...any) string {
			return "'DEFINE:<name> <value>' declares a variable with the type of the value and assigns it."
		},
	},

	"type/arity/eq": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v must have 2 arguments", emph("eq"))
		},
		Explanation: func(args ...any) string {
			return "'eq' compares exactly two values."
		},
	},

	"type/arity/query": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return "you cannot call a variable query with any arguments"
		},
		Explanation: func(args ...any) string {
			return "'&x' gets the value of 'x' and '&&x' gets a reference to it. Neither takes arguments."
		},
	},

	"type/arity/ref": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return "you cannot call a variable reference query with any arguments"
		},
		Explanation: func(args ...any) string {
			return "'&&x' makes a reference to the variable 'x', which can be passed to functions that " +
				"take a 'variable!<type>'. It takes no arguments."
		},
	},

	"type/arity/return": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v must have one argument", emph("return"))
		},
		Explanation: func(args ...any) string {
			return "'return' ends the block it is in with the value of its argument."
		},
	},

	"type/define": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable definition %v is not in correct format, expected %v or %v",
				emph(args[0]), emph("DEFINE:<name>:<type>"), emph("DEFINE:<name> <value>"))
		},
		Explanation: func(args ...any) string {
			return "A definition has either two or three parts separated by colons."
		},
	},

	"type/function": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("function not found %v, possible overloads: %v", emphStr(args[0]), describeCandidates(args[1]))
		},
		Explanation: func(args ...any) string {
			return "No function registered under this name takes arguments of these types, even after " +
				"trying every conversion that could be inserted. The overloads listed are those with the " +
				"right number of parameters."
		},
	},

	"type/generic": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v is not a generic type taking %v type arguments", emph(args[0]), args[1])
		},
		Explanation: func(args ...any) string {
			return "Names like 'array!int' apply a generic type to type arguments, separated by '!'. " +
				"The first part has to be the name of a generic type."
		},
	},

	"type/registered": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("type %v is not registered", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "Only types the host has registered a name for can be used in scripts."
		},
	},

	"type/return": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("return statement is not of type %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "All return statements in a block must be of the same type, dictated by the first one."
		},
	},

	"type/signature": {
		Kind: TYPE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("function %v was not found", emphStr(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A signature is the name of a function followed by the names of its parameter types, " +
				"separated by spaces. No function with this signature is registered."
		},
	},

	"var/assign": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("cannot assign type %v to variable of type %v", emph(args[0]), emph(args[1]))
		},
		Explanation: func(args ...any) string {
			return "Assignment never converts: the value must already have the variable's type. " +
				"Use a conversion function explicitly, e.g. 'x= IN int \"5\" . .'."
		},
	},

	"var/defined": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable named %v is already defined", emphStr(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A variable can be defined once in each block. A block nested inside it may " +
				"define a variable of the same name, which hides the outer one until the block ends."
		},
	},

	"var/flow": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable %v cannot hold a return signal", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "The value of a 'return' statement only exists to end its block. It can't be kept in a variable."
		},
	},

	"var/name": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("%v is not a valid variable name", emphStr(args[0]))
		},
		Explanation: func(args ...any) string {
			return "A variable name must be non-empty."
		},
	},

	"var/undefined/a": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("failed to get variable %v to reference", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "'&&x' makes a reference to a variable 'x' defined in this block or a block enclosing it."
		},
	},

	"var/undefined/b": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("failed to get variable %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "'&x' gets the value of a variable 'x' defined in this block or a block enclosing it."
		},
	},

	"var/undefined/c": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("failed to get variable %v to assign to", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "'x= <value>' assigns to a variable 'x' defined in this block or a block enclosing " +
				"it. To define a new one, use 'DEFINE:x <value>'."
		},
	},

	"var/undefined/d": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("there is no global variable %v", emph(args[0]))
		},
		Explanation: func(args ...any) string {
			return "The host asked for a variable of the root scope which hasn't been defined, either " +
				"by the host or by a line entered into the service."
		},
	},

	"var/void": {
		Kind: VARIABLE_ERROR,
		Message: func(args ...any) string {
			return fmt.Sprintf("variable %v cannot be of type %v", emph(args[0]), emph("void"))
		},
		Explanation: func(args ...any) string {
			return "The value used to define a variable with 'DEFINE:<name> <value>' must have a type; " +
				"this one comes from a statement that returns nothing."
		},
	},
}
