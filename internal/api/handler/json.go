package handler

import jsoniter "github.com/json-iterator/go"

// json substitui encoding/json mantendo compatibilidade com a stdlib
var json = jsoniter.ConfigCompatibleWithStandardLibrary
