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

package parser

import (
	"github.com/bufbuild/protocompile/ast"

	"github.com/bufbuild/protoast/schema"
)

func (b *builder) buildService(n *ast.ServiceNode) (*schema.Service, error) {
	if n.Name == nil {
		return nil, b.notFound("serviceName", n)
	}
	svc := &schema.Service{Name: n.Name.Val}
	for _, decl := range n.Decls {
		switch decl := decl.(type) {
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			svc.Options = append(svc.Options, opt)
		case *ast.RPCNode:
			rpc, err := b.buildRPC(decl)
			if err != nil {
				return nil, err
			}
			svc.RPCs = append(svc.RPCs, rpc)
		case *ast.EmptyDeclNode:
		default:
			return nil, b.unexpected(decl)
		}
	}
	return svc, nil
}

// buildRPC requires the method name, request type and response type, in
// that order, before looking at the method body.
func (b *builder) buildRPC(n *ast.RPCNode) (*schema.RPC, error) {
	if n.Name == nil {
		return nil, b.notFound("rpcName", n)
	}
	rpc := &schema.RPC{Name: n.Name.Val}
	if n.Input == nil || n.Input.MessageType == nil {
		return nil, b.notFound("requestType", n)
	}
	rpc.Request = string(n.Input.MessageType.AsIdentifier())
	rpc.ClientStreaming = n.Input.Stream != nil
	if n.Output == nil || n.Output.MessageType == nil {
		return nil, b.notFound("responseType", n)
	}
	rpc.Response = string(n.Output.MessageType.AsIdentifier())
	rpc.ServerStreaming = n.Output.Stream != nil

	for _, decl := range n.Decls {
		switch decl := decl.(type) {
		case *ast.OptionNode:
			opt, err := b.buildOption(decl)
			if err != nil {
				return nil, err
			}
			rpc.Options = append(rpc.Options, opt)
		case *ast.EmptyDeclNode:
		default:
			return nil, b.unexpected(decl)
		}
	}
	return rpc, nil
}
