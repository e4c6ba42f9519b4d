package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/workpulse/attendance-api/internal/models"
)

// NewSchema builds the executable schema over the resolver set.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	roleEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Role",
		Values: graphql.EnumValueConfigMap{
			string(models.RoleAdmin):    &graphql.EnumValueConfig{Value: string(models.RoleAdmin)},
			string(models.RoleEmployee): &graphql.EnumValueConfig{Value: string(models.RoleEmployee)},
		},
	})

	sortEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "EmployeeSort",
		Values: graphql.EnumValueConfigMap{
			string(models.SortNameAsc):        &graphql.EnumValueConfig{Value: string(models.SortNameAsc)},
			string(models.SortNameDesc):       &graphql.EnumValueConfig{Value: string(models.SortNameDesc)},
			string(models.SortAgeAsc):         &graphql.EnumValueConfig{Value: string(models.SortAgeAsc)},
			string(models.SortAgeDesc):        &graphql.EnumValueConfig{Value: string(models.SortAgeDesc)},
			string(models.SortAttendanceAsc):  &graphql.EnumValueConfig{Value: string(models.SortAttendanceAsc)},
			string(models.SortAttendanceDesc): &graphql.EnumValueConfig{Value: string(models.SortAttendanceDesc)},
			string(models.SortClassAsc):       &graphql.EnumValueConfig{Value: string(models.SortClassAsc)},
			string(models.SortClassDesc):      &graphql.EnumValueConfig{Value: string(models.SortClassDesc)},
			string(models.SortCreatedAtAsc):   &graphql.EnumValueConfig{Value: string(models.SortCreatedAtAsc)},
			string(models.SortCreatedAtDesc):  &graphql.EnumValueConfig{Value: string(models.SortCreatedAtDesc)},
		},
	})

	var employeeType *graphql.Object
	var attendanceRecordType *graphql.Object

	employeeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":                   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"name":                 &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"email":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"age":                  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"phone":                &graphql.Field{Type: graphql.String},
				"class":                &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"subjects":             &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
				"attendance":           &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
				"role":                 &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
				"dateOfJoining":        &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"lastAttendanceUpdate": &graphql.Field{Type: graphql.DateTime},
				"createdAt":            &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"updatedAt":            &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"attendanceRecords": &graphql.Field{
					Type:    graphql.NewList(graphql.NewNonNull(attendanceRecordType)),
					Resolve: r.resolveEmployeeRecords,
				},
			}
		}),
	})

	attendanceRecordType = graphql.NewObject(graphql.ObjectConfig{
		Name: "AttendanceRecord",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"employeeId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
				"date":       &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"present":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
				"notes":      &graphql.Field{Type: graphql.String},
				"createdAt":  &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"employee": &graphql.Field{
					Type:    employeeType,
					Resolve: r.resolveRecordEmployee,
				},
				"createdBy": &graphql.Field{
					Type:    employeeType,
					Resolve: r.resolveRecordCreatedBy,
				},
			}
		}),
	})

	paginationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Pagination",
		Fields: graphql.Fields{
			"currentPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"pageSize":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalCount":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalPages":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	employeePageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeePage",
		Fields: graphql.Fields{
			"employees":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType)))},
			"pagination": &graphql.Field{Type: graphql.NewNonNull(paginationType)},
		},
	})

	classStatsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ClassStats",
		Fields: graphql.Fields{
			"class":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"count":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"avgAttendance": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	trendPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TrendPoint",
		Fields: graphql.Fields{
			"date":          &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"presentCount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"absentCount":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"avgAttendance": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EmployeeStats",
		Fields: graphql.Fields{
			"totalEmployees": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"avgAttendance":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"avgAge":         &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"byClass":        &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(classStatsType)))},
			"trend":          &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(trendPointType)))},
		},
	})

	fieldErrorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FieldError",
		Fields: graphql.Fields{
			"field":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"code":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	mutationResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MutationResponse",
		Fields: graphql.Fields{
			"success":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message":  &graphql.Field{Type: graphql.String},
			"employee": &graphql.Field{Type: employeeType},
			"record":   &graphql.Field{Type: attendanceRecordType},
			"errors":   &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(fieldErrorType))},
		},
	})

	loginPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginPayload",
		Fields: graphql.Fields{
			"token":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"employee": &graphql.Field{Type: graphql.NewNonNull(employeeType)},
		},
	})

	filterInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EmployeeFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.String},
			"class":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"role":          &graphql.InputObjectFieldConfig{Type: roleEnum},
			"minAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"maxAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"minAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"maxAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"subjects":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})

	createEmployeeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateEmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"age":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"phone":         &graphql.InputObjectFieldConfig{Type: graphql.String},
			"class":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"subjects":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"role":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(roleEnum)},
			"dateOfJoining": &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	updateEmployeeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateEmployeeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"age":      &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"phone":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"class":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"subjects": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"role":     &graphql.InputObjectFieldConfig{Type: roleEnum},
		},
	})

	markAttendanceInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "MarkAttendanceInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"employeeId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"date":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"present":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Boolean)},
			"notes":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"employees": &graphql.Field{
				Type: graphql.NewNonNull(employeePageType),
				Args: graphql.FieldConfigArgument{
					"filter":   &graphql.ArgumentConfig{Type: filterInput},
					"sort":     &graphql.ArgumentConfig{Type: sortEnum},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"pageSize": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
				},
				Resolve: r.resolveEmployees,
			},
			"employee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveEmployee,
			},
			"employeeStats": &graphql.Field{
				Type:    graphql.NewNonNull(statsType),
				Resolve: r.resolveEmployeeStats,
			},
			"employeeAttendance": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(attendanceRecordType))),
				Args: graphql.FieldConfigArgument{
					"employeeId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"from":       &graphql.ArgumentConfig{Type: graphql.DateTime},
					"to":         &graphql.ArgumentConfig{Type: graphql.DateTime},
				},
				Resolve: r.resolveEmployeeAttendance,
			},
			"me": &graphql.Field{
				Type:    employeeType,
				Resolve: r.resolveMe,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(loginPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resolveLogin,
			},
			"createEmployee": &graphql.Field{
				Type: graphql.NewNonNull(mutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createEmployeeInput)},
				},
				Resolve: r.resolveCreateEmployee,
			},
			"updateEmployee": &graphql.Field{
				Type: graphql.NewNonNull(mutationResponseType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateEmployeeInput)},
				},
				Resolve: r.resolveUpdateEmployee,
			},
			"markAttendance": &graphql.Field{
				Type: graphql.NewNonNull(mutationResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(markAttendanceInput)},
				},
				Resolve: r.resolveMarkAttendance,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
