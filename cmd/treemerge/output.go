package main

import (
	"fmt"
	"io"
)

// Output defines a uniform interface to write command results to some
// stream, independent of whether that stream is stdout, a file, or (in
// tests) a buffer.
type Output interface {
	Print(text string) (int, error)
	Println(text string) (int, error)
	Printf(format string, args ...interface{}) (int, error)
	Printfln(format string, args ...interface{}) (int, error)
}

// PlainOutput is an Output that writes data in raw form to an io.Writer.
type PlainOutput struct {
	Device io.Writer
}

func (o *PlainOutput) Print(text string) (int, error) {
	return o.Device.Write([]byte(text))
}

func (o *PlainOutput) Println(text string) (int, error) {
	n1, err1 := o.Device.Write([]byte(text))
	if err1 != nil {
		return n1, err1
	}
	n2, err2 := o.Device.Write([]byte{'\n'})
	return n1 + n2, err2
}

func (o *PlainOutput) Printf(format string, args ...interface{}) (int, error) {
	return o.Device.Write([]byte(fmt.Sprintf(format, args...)))
}

func (o *PlainOutput) Printfln(format string, args ...interface{}) (int, error) {
	return o.Device.Write([]byte(fmt.Sprintf(format+"\n", args...)))
}
