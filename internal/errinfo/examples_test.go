package errinfo_test

import (
	"errors"
	"fmt"

	"confstore/internal/errinfo"
)

// Example_accumulate demonstrates threading one chain through nested calls.
func Example_accumulate() {
	var ei *errinfo.ErrInfo

	// Leaf failure first, context appended on the way up.
	ei = ei.Sysf("shm_open", errors.New("no such file or directory"))
	ei = ei.Errf(errinfo.CodeOperationFailed, "Recovering datastore state failed.")

	fmt.Println("records:", ei.Len())
	fmt.Println("primary cause:", ei.Code())
	fmt.Println(ei.Error())

	// Output:
	// records: 2
	// primary cause: System function call failed
	// shm_open() failed (no such file or directory).; Recovering datastore state failed.
}

// Example_merge demonstrates moving a sub-operation's chain into the parent's.
func Example_merge() {
	var parent, sub *errinfo.ErrInfo
	parent = parent.Validation()
	sub = sub.InvalidArgf("EditBatch")

	parent = parent.Merge(sub)

	fmt.Println("parent records:", parent.Len())
	fmt.Println("sub records:", sub.Len())

	// Output:
	// parent records: 2
	// sub records: 0
}

// Example_classify demonstrates classifying a chain with errors.Is.
func Example_classify() {
	var ei *errinfo.ErrInfo
	ei = ei.NoMem()

	fmt.Println(errors.Is(ei, errinfo.CodeNoMem))
	fmt.Println(errors.Is(ei, errinfo.CodeValidationFailed))

	// Output:
	// true
	// false
}
