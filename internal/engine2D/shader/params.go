package shader

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Constants are scene supplied uniform values: numbers, "x y" / "x y z"
// strings or {"value": n} objects.
type Constants map[string]interface{}

// Parameters are the standard uniform locations; -1 when the shader does
// not declare them.
type Parameters struct {
	Time       int32
	Pointer    int32
	Parallax   int32
	Resolution int32
	TexelSize  int32
}

type Uniform struct {
	Location int32
	Type     rl.ShaderUniformDataType
	Values   []float32
}

// Effect is a compiled canvas shader with its precomputed constant uniforms.
type Effect struct {
	Name       string
	Shader     rl.Shader
	Parameters Parameters
	Constants  Constants
	Uniforms   []Uniform
}

// ResolveLocations queries a shader for the uniform locations set per frame.
func ResolveLocations(shader rl.Shader) Parameters {
	parameters := Parameters{
		Time:       rl.GetShaderLocation(shader, "g_Time"),
		Pointer:    rl.GetShaderLocation(shader, "g_PointerPosition"),
		Parallax:   rl.GetShaderLocation(shader, "g_ParallaxPosition"),
		Resolution: rl.GetShaderLocation(shader, "g_Texture0Resolution"),
		TexelSize:  rl.GetShaderLocation(shader, "g_TexelSize"),
	}

	if parameters.Pointer == -1 {
		parameters.Pointer = rl.GetShaderLocation(shader, "g_Pointer")
	}
	return parameters
}

// UpdateUniforms rebuilds the precomputed uniforms from Constants. Call it
// after changing Constants at runtime.
func (e *Effect) UpdateUniforms() {
	e.Uniforms = e.Uniforms[:0]

	for k, v := range e.Constants {
		values, uType, ok := UniformValue(v)
		if !ok {
			continue
		}

		var loc int32 = -1
		for _, name := range uniformNames(k) {
			loc = rl.GetShaderLocation(e.Shader, name)
			if loc != -1 {
				break
			}
		}
		if loc == -1 {
			continue
		}

		e.Uniforms = append(e.Uniforms, Uniform{Location: loc, Type: uType, Values: values})
	}
}

func uniformNames(key string) []string {
	names := []string{"g_" + key, key}
	if key != "" {
		names = append(names, "g_"+strings.ToUpper(key[:1])+key[1:])
	}
	return names
}

// UniformValue converts a constant to float32 components and the matching
// uniform type. ok is false for values that cannot be bound.
func UniformValue(v interface{}) ([]float32, rl.ShaderUniformDataType, bool) {
	switch val := v.(type) {
	case float64:
		return []float32{float32(val)}, rl.ShaderUniformFloat, true
	case int:
		return []float32{float32(val)}, rl.ShaderUniformFloat, true
	case bool:
		if val {
			return []float32{1}, rl.ShaderUniformFloat, true
		}
		return []float32{0}, rl.ShaderUniformFloat, true
	case string:
		parts := strings.Fields(val)
		if len(parts) == 0 || len(parts) > 4 {
			return nil, 0, false
		}
		floats := make([]float32, len(parts))
		for i, part := range parts {
			f, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, 0, false
			}
			floats[i] = float32(f)
		}
		types := []rl.ShaderUniformDataType{rl.ShaderUniformFloat, rl.ShaderUniformVec2, rl.ShaderUniformVec3, rl.ShaderUniformVec4}
		return floats, types[len(floats)-1], true
	case map[string]interface{}:
		if inner, ok := val["value"]; ok {
			return UniformValue(inner)
		}
	}
	return nil, 0, false
}
