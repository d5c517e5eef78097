package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/timetable/core/school"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
}

// registerSchoolAPI mounts the timetable resources. Reads are open to any signed-in user, writes to admins only.
func registerSchoolAPI(g *echo.Group, auth *authenticator, svc *school.Service, validate *validator.Validate) {
	api := schoolApi{svc: svc, validate: validate}
	admin := auth.adminOnly()

	g.GET("/labels", api.labels)

	tg := g.Group("/teacher", auth.protected())
	tg.GET("", api.queryTeachers)
	tg.GET("/:id", api.retrieveTeacher)
	tg.POST("", createRows[school.Teacher](svc.CreateTeachers, "teachers"), admin)
	tg.PUT("", updateRows[school.Teacher](validate, svc.UpdateTeachers, func(t school.Teacher) int { return t.ID }, "teachers"), admin)
	tg.DELETE("", deleteRows(validate, svc.DeleteTeachers, "teachers"), admin)

	rg := g.Group("/room", auth.protected())
	rg.GET("", api.queryRooms)
	rg.GET("/availableRooms", api.availableRooms)
	rg.POST("", createRows[school.Room](svc.CreateRooms, "rooms"), admin)
	rg.PUT("", updateRows[school.Room](validate, svc.UpdateRooms, func(r school.Room) int { return r.ID }, "rooms"), admin)
	rg.DELETE("", deleteRows(validate, svc.DeleteRooms, "rooms"), admin)

	sg := g.Group("/subject", auth.protected())
	sg.GET("", api.querySubjects)
	sg.GET("/notInPrograms", api.subjectsNotInPrograms)
	sg.POST("", createRows[school.Subject](svc.CreateSubjects, "subjects"), admin)
	sg.PUT("", updateRows[school.Subject](validate, svc.UpdateSubjects, func(s school.Subject) int { return s.ID }, "subjects"), admin)
	sg.DELETE("", deleteRows(validate, svc.DeleteSubjects, "subjects"), admin)

	pg := g.Group("/program", auth.protected())
	pg.GET("", api.queryPrograms)
	pg.POST("", createRows[school.Program](svc.CreatePrograms, "programs"), admin)
	pg.PUT("", updateRows[school.Program](validate, svc.UpdatePrograms, func(p school.Program) int { return p.ID }, "programs"), admin)
	pg.DELETE("", deleteRows(validate, svc.DeletePrograms, "programs"), admin)

	gg := g.Group("/gradelevel", auth.protected())
	gg.GET("", api.queryGradeLevels)
	gg.POST("", createRows[school.GradeLevel](svc.CreateGradeLevels, "grade levels"), admin)
	gg.PUT("", updateRows[school.GradeLevel](validate, svc.UpdateGradeLevels, func(gl school.GradeLevel) int { return gl.ID }, "grade levels"), admin)
	gg.DELETE("", deleteRows(validate, svc.DeleteGradeLevels, "grade levels"), admin)

	sl := g.Group("/timeslot", auth.protected())
	sl.GET("", api.queryTimeslots)
	sl.POST("/generate", api.generateTimeslots, admin)
	sl.DELETE("", api.deleteTimeslots, admin)

	cg := g.Group("/class", auth.protected())
	cg.GET("", api.queryClassSchedules)
	cg.GET("/conflicts", api.checkConflicts)
	cg.POST("", createRows[school.ClassSchedule](svc.CreateClassSchedules, "class schedules"), admin)
	cg.PUT("", updateRows[school.ClassSchedule](validate, svc.UpdateClassSchedules, func(c school.ClassSchedule) int { return c.ID }, "class schedules"), admin)
	cg.DELETE("", deleteRows(validate, svc.DeleteClassSchedules, "class schedules"), admin)

	lg := g.Group("/lock", auth.protected())
	lg.GET("", api.queryLocks)
	lg.POST("", api.createLocks, admin)
	lg.DELETE("", deleteRows(validate, svc.DeleteClassSchedules, "locks"), admin)

	ag := g.Group("/assign", auth.protected())
	ag.GET("", api.queryResponsibilities)
	ag.POST("", createRows[school.Responsibility](svc.CreateResponsibilities, "responsibilities"), admin)
	ag.PUT("", updateRows[school.Responsibility](validate, svc.UpdateResponsibilities, func(r school.Responsibility) int { return r.ID }, "responsibilities"), admin)
	ag.DELETE("", deleteRows(validate, svc.DeleteResponsibilities, "responsibilities"), admin)

	fg := g.Group("/config", auth.protected())
	fg.GET("", api.queryTableConfigs)
	fg.GET("/term", api.retrieveTableConfig)
	fg.PUT("/term", api.saveTableConfig, admin)
	fg.DELETE("/term", api.deleteTableConfig, admin)
}

// Handlers

func (api *schoolApi) labels(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, school.AllLabels())
}

func (api *schoolApi) queryTeachers(ctx echo.Context) error {
	var filter school.TeacherFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	teachers, err := api.svc.QueryTeachers(ctx.Request().Context(), filter)
	return list(ctx, teachers, err, "teachers")
}

func (api *schoolApi) retrieveTeacher(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	teacher, err := api.svc.GetTeacher(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, teacher)
}

func (api *schoolApi) queryRooms(ctx echo.Context) error {
	rooms, err := api.svc.QueryRooms(ctx.Request().Context())
	return list(ctx, rooms, err, "rooms")
}

func (api *schoolApi) availableRooms(ctx echo.Context) error {
	var query school.AvailableRoomsFilter
	if err := bindQuery(ctx, &query); err != nil {
		return err
	}
	if err := api.validate.Struct(query); err != nil {
		return err
	}
	rooms, err := api.svc.AvailableRooms(ctx.Request().Context(), query.TimeslotID)
	return list(ctx, rooms, err, "available rooms")
}

func (api *schoolApi) querySubjects(ctx echo.Context) error {
	var filter school.SubjectFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	subjects, err := api.svc.QuerySubjects(ctx.Request().Context(), filter)
	return list(ctx, subjects, err, "subjects")
}

func (api *schoolApi) subjectsNotInPrograms(ctx echo.Context) error {
	subjects, err := api.svc.SubjectsNotInPrograms(ctx.Request().Context())
	return list(ctx, subjects, err, "subjects not in programs")
}

func (api *schoolApi) queryPrograms(ctx echo.Context) error {
	var filter school.ProgramFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	programs, err := api.svc.QueryPrograms(ctx.Request().Context(), filter)
	return list(ctx, programs, err, "programs")
}

func (api *schoolApi) queryGradeLevels(ctx echo.Context) error {
	var filter school.GradeLevelFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	grades, err := api.svc.QueryGradeLevels(ctx.Request().Context(), filter)
	return list(ctx, grades, err, "grade levels")
}

func (api *schoolApi) queryTimeslots(ctx echo.Context) error {
	var term school.Term
	if err := bindTerm(ctx, api.validate, &term); err != nil {
		return err
	}
	slots, err := api.svc.QueryTimeslots(ctx.Request().Context(), term)
	return list(ctx, slots, err, "timeslots")
}

func (api *schoolApi) generateTimeslots(ctx echo.Context) error {
	var term school.Term
	if err := bindJSON(ctx, &term); err != nil {
		return err
	}
	if err := api.validate.Struct(term); err != nil {
		return err
	}
	cnt, err := api.svc.GenerateTimeslots(ctx.Request().Context(), term)
	if err != nil {
		return errors.Wrap(err, "generating timeslots")
	}
	return ctx.JSON(http.StatusCreated, school.Count{Count: cnt})
}

func (api *schoolApi) deleteTimeslots(ctx echo.Context) error {
	var term school.Term
	if err := bindTerm(ctx, api.validate, &term); err != nil {
		return err
	}
	cnt, err := api.svc.DeleteTimeslots(ctx.Request().Context(), term)
	if err != nil {
		return errors.Wrap(err, "deleting timeslots")
	}
	return ctx.JSON(http.StatusOK, school.Count{Count: cnt})
}

func (api *schoolApi) queryClassSchedules(ctx echo.Context) error {
	var filter school.ClassScheduleFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	schedules, err := api.svc.QueryClassSchedules(ctx.Request().Context(), filter)
	return list(ctx, schedules, err, "class schedules")
}

func (api *schoolApi) checkConflicts(ctx echo.Context) error {
	var term school.Term
	if err := bindTerm(ctx, api.validate, &term); err != nil {
		return err
	}
	if err := api.svc.CheckConflicts(ctx.Request().Context(), term); err != nil {
		return errors.Wrap(err, "checking conflicts")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryLocks(ctx echo.Context) error {
	var filter school.ClassScheduleFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	filter.LockedOnly = true
	locks, err := api.svc.QueryClassSchedules(ctx.Request().Context(), filter)
	return list(ctx, locks, err, "locks")
}

func (api *schoolApi) createLocks(ctx echo.Context) error {
	var data school.NewLock
	if err := bindJSON(ctx, &data); err != nil {
		return err
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}
	cnt, err := api.svc.CreateLocks(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating locks")
	}
	return ctx.JSON(http.StatusCreated, school.Count{Count: cnt})
}

func (api *schoolApi) queryResponsibilities(ctx echo.Context) error {
	var filter school.ResponsibilityFilter
	if err := bindQuery(ctx, &filter); err != nil {
		return err
	}
	resps, err := api.svc.QueryResponsibilities(ctx.Request().Context(), filter)
	return list(ctx, resps, err, "responsibilities")
}

func (api *schoolApi) queryTableConfigs(ctx echo.Context) error {
	confs, err := api.svc.QueryTableConfigs(ctx.Request().Context())
	return list(ctx, confs, err, "table configs")
}

func (api *schoolApi) retrieveTableConfig(ctx echo.Context) error {
	var term school.Term
	if err := bindTerm(ctx, api.validate, &term); err != nil {
		return err
	}
	conf, err := api.svc.GetTableConfig(ctx.Request().Context(), term)
	if err != nil {
		return errors.Wrap(err, "finding table config")
	}
	return ctx.JSON(http.StatusOK, conf)
}

func (api *schoolApi) saveTableConfig(ctx echo.Context) error {
	var data school.TableConfig
	if err := bindJSON(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	conf, err := api.svc.SaveTableConfig(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving table config")
	}
	return ctx.JSON(http.StatusOK, conf)
}

func (api *schoolApi) deleteTableConfig(ctx echo.Context) error {
	var term school.Term
	if err := bindTerm(ctx, api.validate, &term); err != nil {
		return err
	}
	cnt, err := api.svc.DeleteTableConfig(ctx.Request().Context(), term)
	if err != nil {
		return errors.Wrap(err, "deleting table config")
	}
	return ctx.JSON(http.StatusOK, school.Count{Count: cnt})
}
