package orion

import "fmt"

// Handle panics if err is not nil. Use it where there is nobody left
// to return the error to.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(text + ": " + err.Error())
	}
}
