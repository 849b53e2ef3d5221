// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package walk provides helper functions for traversing all elements in a
// parsed proto file, in declaration order.
package walk

import (
	"github.com/bufbuild/protoast/schema"
)

// Element is the value passed to walk callbacks. Its concrete type is one
// of *schema.Message, *schema.NormalField, *schema.MapField,
// *schema.OneofDefine, *schema.OneofField, *schema.Enum, *schema.EnumField,
// *schema.Service or *schema.RPC.
type Element any

// File walks all elements in the given file, calling fn with the fully
// qualified name of each. Names are qualified the way protoc qualifies them:
// oneof members belong to the enclosing message and enum values to the
// scope that encloses their enum. If fn returns an error, the walk stops
// and that error is returned.
func File(file *schema.ProtoFile, fn func(name string, elem Element) error) error {
	return FileEnterAndExit(file, fn, nil)
}

// FileEnterAndExit is like File, but for elements that contain other
// elements (messages, oneofs, enums and services) exit is called after all
// children have been visited. For leaf elements exit is called right after
// enter. exit may be nil.
func FileEnterAndExit(file *schema.ProtoFile, enter, exit func(name string, elem Element) error) error {
	w := &walker{enter: enter, exit: exit}
	prefix := file.Package
	if prefix != "" {
		prefix += "."
	}
	for _, msg := range file.Messages {
		if err := w.message(prefix, msg); err != nil {
			return err
		}
	}
	for _, en := range file.Enums {
		if err := w.enum(prefix, en); err != nil {
			return err
		}
	}
	for _, svc := range file.Services {
		if err := w.service(prefix, svc); err != nil {
			return err
		}
	}
	return nil
}

type walker struct {
	enter, exit func(string, Element) error
}

func (w *walker) leaf(name string, elem Element) error {
	if err := w.enter(name, elem); err != nil {
		return err
	}
	if w.exit != nil {
		return w.exit(name, elem)
	}
	return nil
}

func (w *walker) message(prefix string, msg *schema.Message) error {
	name := prefix + msg.Name
	if err := w.enter(name, msg); err != nil {
		return err
	}
	scope := name + "."
	for _, fld := range msg.Fields {
		switch fld := fld.(type) {
		case *schema.NormalField:
			if err := w.leaf(scope+fld.Name, fld); err != nil {
				return err
			}
		case *schema.MapField:
			if err := w.leaf(scope+fld.Name, fld); err != nil {
				return err
			}
		case *schema.OneofDefine:
			if err := w.oneof(scope, fld); err != nil {
				return err
			}
		}
	}
	for _, nested := range msg.Messages {
		if err := w.message(scope, nested); err != nil {
			return err
		}
	}
	for _, en := range msg.Enums {
		if err := w.enum(scope, en); err != nil {
			return err
		}
	}
	if w.exit != nil {
		return w.exit(name, msg)
	}
	return nil
}

func (w *walker) oneof(scope string, oo *schema.OneofDefine) error {
	name := scope + oo.Name
	if err := w.enter(name, oo); err != nil {
		return err
	}
	for _, fld := range oo.Fields {
		if err := w.leaf(scope+fld.Name, fld); err != nil {
			return err
		}
	}
	if w.exit != nil {
		return w.exit(name, oo)
	}
	return nil
}

func (w *walker) enum(prefix string, en *schema.Enum) error {
	name := prefix + en.Name
	if err := w.enter(name, en); err != nil {
		return err
	}
	for _, val := range en.Fields {
		if err := w.leaf(prefix+val.Name, val); err != nil {
			return err
		}
	}
	if w.exit != nil {
		return w.exit(name, en)
	}
	return nil
}

func (w *walker) service(prefix string, svc *schema.Service) error {
	name := prefix + svc.Name
	if err := w.enter(name, svc); err != nil {
		return err
	}
	for _, rpc := range svc.RPCs {
		if err := w.leaf(name+"."+rpc.Name, rpc); err != nil {
			return err
		}
	}
	if w.exit != nil {
		return w.exit(name, svc)
	}
	return nil
}
