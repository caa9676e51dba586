/*
	thin wrappers around opengl 4.1 core objects

	Program
		vertex + fragment shader, uniforms, samplers, uniform blocks
	StageShader, Pipeline
		separable single stage programs combined in a program pipeline
	Texture
		2d rgb image texture with mipmaps
	OmniShadowMap
		point light distance rendered into a depth cubemap in one pass,
		geometry stage emits every triangle to all six layers
	Mesh, Geometry
		indexed triangles, position/normal/uv at locations 0/1/2
	Context
		glfw window and current gl context
	Watcher
		reload shader files on change

	every call has to happen on the thread owning the context.
	handles are valid from New* until Destroy.
*/

package engine
