package main

import "reflect"

// Person and Event are small fixture types the dump tool can decode by
// name, standing in for the "small fixture registry" a real embedder would
// register at startup.
type Person struct {
	Name string   `codec:"name"`
	Age  int32    `codec:"age"`
	Tags []string `codec:"tags"`
}

type Event struct {
	Kind string  `codec:"kind"`
	At   int64   `codec:"at"`
	Tags []Tag   `codec:"tags"`
}

type Tag struct {
	Key   string `codec:"key"`
	Value string `codec:"value"`
}

var fixtures = map[string]reflect.Type{
	"Person": reflect.TypeOf(Person{}),
	"Event":  reflect.TypeOf(Event{}),
}
